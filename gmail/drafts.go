package gmail

import (
	"context"
	"net/url"
	"strconv"
)

// Draft wraps an unsent message.
type Draft struct {
	ID      string   `json:"id"`
	Message *Message `json:"message,omitempty"`
}

// DraftList is one page of drafts. Drafts is nil when the mailbox has none.
type DraftList struct {
	Drafts             []Draft `json:"drafts"`
	NextPageToken      string  `json:"nextPageToken,omitempty"`
	ResultSizeEstimate int64   `json:"resultSizeEstimate"`
}

type draftRequest struct {
	Message sendMessageRequest `json:"message"`
}

type sendDraftRequest struct {
	ID string `json:"id"`
}

// ListDrafts returns one page of drafts. maxResults of zero means 10.
func (c *Client) ListDrafts(ctx context.Context, maxResults int64, pageToken string) (*DraftList, error) {
	if maxResults == 0 {
		maxResults = 10
	}
	query := url.Values{}
	query.Set("maxResults", strconv.FormatInt(maxResults, 10))
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}

	var list DraftList
	if err := c.transport.get(ctx, "/users/me/drafts", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetDraft fetches a draft with its message in the given format.
// An empty format means full.
func (c *Client) GetDraft(ctx context.Context, id string, format MessageFormat) (*Draft, error) {
	if format == "" {
		format = FormatFull
	}
	query := url.Values{}
	query.Set("format", string(format))

	var draft Draft
	if err := c.transport.get(ctx, "/users/me/drafts/"+id, query, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// CreateDraft composes a message and saves it as a draft.
func (c *Client) CreateDraft(ctx context.Context, input SendMessageInput) (*Draft, error) {
	outgoing := BuildSimple(input.To, input.Subject, input.Body, input.From, input.Cc, input.Bcc, input.HTMLBody)
	return c.CreateRawDraft(ctx, EncodeMessage(outgoing), input.ThreadID)
}

// CreateRawDraft saves an already-encoded raw message as a draft.
func (c *Client) CreateRawDraft(ctx context.Context, raw, threadID string) (*Draft, error) {
	var draft Draft
	req := draftRequest{Message: sendMessageRequest{Raw: raw, ThreadID: threadID}}
	if err := c.transport.post(ctx, "/users/me/drafts", req, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// SendDraft sends an existing draft and returns the sent message. The
// draft ceases to exist once sent.
func (c *Client) SendDraft(ctx context.Context, id string) (*Message, error) {
	var msg Message
	if err := c.transport.post(ctx, "/users/me/drafts/send", sendDraftRequest{ID: id}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteDraft permanently discards a draft.
func (c *Client) DeleteDraft(ctx context.Context, id string) error {
	return c.transport.delete(ctx, "/users/me/drafts/"+id)
}
