package gmail

import (
	"context"
	"net/url"
	"strconv"
)

// Thread is a conversation: its messages in delivery order.
type Thread struct {
	ID        string     `json:"id"`
	Snippet   string     `json:"snippet,omitempty"`
	HistoryID string     `json:"historyId,omitempty"`
	Messages  []*Message `json:"messages,omitempty"`
}

// ThreadRef is the abbreviated form returned by list calls.
type ThreadRef struct {
	ID        string `json:"id"`
	Snippet   string `json:"snippet,omitempty"`
	HistoryID string `json:"historyId,omitempty"`
}

// ThreadList is one page of thread references. Threads is nil when the
// query matched nothing.
type ThreadList struct {
	Threads            []ThreadRef `json:"threads"`
	NextPageToken      string      `json:"nextPageToken,omitempty"`
	ResultSizeEstimate int64       `json:"resultSizeEstimate"`
}

// ListThreadsInput holds the parameters for ListThreads. The semantics
// mirror ListMessagesInput.
type ListThreadsInput struct {
	Query            string
	MaxResults       int64
	PageToken        string
	LabelIDs         []string
	IncludeSpamTrash bool
}

// ListThreads returns one page of thread references matching the input.
func (c *Client) ListThreads(ctx context.Context, input ListThreadsInput) (*ThreadList, error) {
	maxResults := input.MaxResults
	if maxResults == 0 {
		maxResults = 10
	}
	query := url.Values{}
	query.Set("maxResults", strconv.FormatInt(maxResults, 10))
	if input.Query != "" {
		query.Set("q", input.Query)
	}
	if input.PageToken != "" {
		query.Set("pageToken", input.PageToken)
	}
	for _, id := range input.LabelIDs {
		query.Add("labelIds", id)
	}
	if input.IncludeSpamTrash {
		query.Set("includeSpamTrash", "true")
	}

	var list ThreadList
	if err := c.transport.get(ctx, "/users/me/threads", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetThread fetches a thread with its messages in the given format.
// An empty format means full.
func (c *Client) GetThread(ctx context.Context, id string, format MessageFormat) (*Thread, error) {
	if format == "" {
		format = FormatFull
	}
	query := url.Values{}
	query.Set("format", string(format))

	var thread Thread
	if err := c.transport.get(ctx, "/users/me/threads/"+id, query, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// ModifyThread adds and removes labels on every message in a thread.
func (c *Client) ModifyThread(ctx context.Context, id string, addLabelIDs, removeLabelIDs []string) (*Thread, error) {
	var thread Thread
	req := modifyLabelsRequest{AddLabelIDs: addLabelIDs, RemoveLabelIDs: removeLabelIDs}
	if err := c.transport.post(ctx, "/users/me/threads/"+id+"/modify", req, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// TrashThread moves a whole thread to the trash.
func (c *Client) TrashThread(ctx context.Context, id string) (*Thread, error) {
	var thread Thread
	if err := c.transport.post(ctx, "/users/me/threads/"+id+"/trash", nil, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// UntrashThread moves a thread out of the trash.
func (c *Client) UntrashThread(ctx context.Context, id string) (*Thread, error) {
	var thread Thread
	if err := c.transport.post(ctx, "/users/me/threads/"+id+"/untrash", nil, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// DeleteThread permanently deletes a thread and all its messages.
func (c *Client) DeleteThread(ctx context.Context, id string) error {
	return c.transport.delete(ctx, "/users/me/threads/"+id)
}
