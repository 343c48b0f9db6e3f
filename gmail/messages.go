package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	gomail "github.com/emersion/go-message/mail"
)

// Header is a single name/value pair from a parsed message part.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// MessagePartBody holds a part's content: inline data for small parts, an
// attachment ID for large ones.
type MessagePartBody struct {
	AttachmentID string `json:"attachmentId,omitempty"`
	Size         int64  `json:"size"`
	Data         string `json:"data,omitempty"`
}

// MessagePart is one node of a message's MIME tree.
type MessagePart struct {
	PartID   string           `json:"partId"`
	MimeType string           `json:"mimeType"`
	Filename string           `json:"filename"`
	Headers  []Header         `json:"headers"`
	Body     *MessagePartBody `json:"body"`
	Parts    []*MessagePart   `json:"parts,omitempty"`
}

// Header returns the value of the named header, matched case-insensitively.
// The empty string means the header is absent.
func (p *MessagePart) Header(name string) string {
	if p == nil {
		return ""
	}
	for _, h := range p.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// Message is a full message resource. Which fields are populated depends on
// the format it was fetched with.
type Message struct {
	ID           string       `json:"id"`
	ThreadID     string       `json:"threadId"`
	LabelIDs     []string     `json:"labelIds,omitempty"`
	Snippet      string       `json:"snippet,omitempty"`
	HistoryID    string       `json:"historyId,omitempty"`
	InternalDate string       `json:"internalDate,omitempty"`
	SizeEstimate int64        `json:"sizeEstimate,omitempty"`
	Raw          string       `json:"raw,omitempty"`
	Payload      *MessagePart `json:"payload,omitempty"`
}

// MessageRef is the abbreviated form returned by list calls.
type MessageRef struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
}

// MessageList is one page of message references. Messages is nil when the
// query matched nothing.
type MessageList struct {
	Messages           []MessageRef `json:"messages"`
	NextPageToken      string       `json:"nextPageToken,omitempty"`
	ResultSizeEstimate int64        `json:"resultSizeEstimate"`
}

// Profile describes the authorized mailbox.
type Profile struct {
	EmailAddress  string `json:"emailAddress"`
	MessagesTotal int64  `json:"messagesTotal"`
	ThreadsTotal  int64  `json:"threadsTotal"`
	HistoryID     string `json:"historyId"`
}

// MessageFormat selects how much of a message a get call returns.
type MessageFormat string

const (
	FormatFull     MessageFormat = "full"
	FormatMetadata MessageFormat = "metadata"
	FormatMinimal  MessageFormat = "minimal"
	FormatRaw      MessageFormat = "raw"
)

// ListMessagesInput holds the parameters for ListMessages.
type ListMessagesInput struct {
	// Query is a Gmail search expression, e.g. "is:unread from:ada".
	Query string

	// MaxResults caps the page size. Zero means 10.
	MaxResults int64

	// PageToken continues a previous listing.
	PageToken string

	// LabelIDs restricts results to messages carrying all given labels.
	LabelIDs []string

	// IncludeSpamTrash includes SPAM and TRASH messages.
	IncludeSpamTrash bool
}

// GetMessageInput holds the parameters for GetMessage.
type GetMessageInput struct {
	ID string

	// Format defaults to full.
	Format MessageFormat

	// MetadataHeaders names the headers to include with FormatMetadata.
	MetadataHeaders []string
}

// SendMessageInput describes a message to compose and send in one call.
type SendMessageInput struct {
	To      string
	Subject string
	Body    string

	From     string
	Cc       string
	Bcc      string
	HTMLBody string

	// ThreadID places the sent message into an existing thread.
	ThreadID string
}

type sendMessageRequest struct {
	Raw      string `json:"raw"`
	ThreadID string `json:"threadId,omitempty"`
}

type modifyLabelsRequest struct {
	AddLabelIDs    []string `json:"addLabelIds,omitempty"`
	RemoveLabelIDs []string `json:"removeLabelIds,omitempty"`
}

type batchModifyRequest struct {
	IDs            []string `json:"ids"`
	AddLabelIDs    []string `json:"addLabelIds,omitempty"`
	RemoveLabelIDs []string `json:"removeLabelIds,omitempty"`
}

// GetProfile fetches the mailbox profile for the authorized account.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.transport.get(ctx, "/users/me/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListMessages returns one page of message references matching the input.
func (c *Client) ListMessages(ctx context.Context, input ListMessagesInput) (*MessageList, error) {
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

	var list MessageList
	if err := c.transport.get(ctx, "/users/me/messages", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetMessage fetches a single message.
func (c *Client) GetMessage(ctx context.Context, input GetMessageInput) (*Message, error) {
	format := input.Format
	if format == "" {
		format = FormatFull
	}
	query := url.Values{}
	query.Set("format", string(format))
	for _, h := range input.MetadataHeaders {
		query.Add("metadataHeaders", h)
	}

	var msg Message
	if err := c.transport.get(ctx, "/users/me/messages/"+input.ID, query, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendMessage composes and sends a message in one step.
func (c *Client) SendMessage(ctx context.Context, input SendMessageInput) (*Message, error) {
	outgoing := BuildSimple(input.To, input.Subject, input.Body, input.From, input.Cc, input.Bcc, input.HTMLBody)
	return c.SendRawMessage(ctx, EncodeMessage(outgoing), input.ThreadID)
}

// SendRawMessage sends an already-encoded raw message. raw must be the
// unpadded base64url form of the full RFC 2822 text. threadID, when set,
// adds the message to that thread.
func (c *Client) SendRawMessage(ctx context.Context, raw, threadID string) (*Message, error) {
	var msg Message
	req := sendMessageRequest{Raw: raw, ThreadID: threadID}
	if err := c.transport.post(ctx, "/users/me/messages/send", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ModifyMessage adds and removes labels on a message and returns the
// updated message.
func (c *Client) ModifyMessage(ctx context.Context, id string, addLabelIDs, removeLabelIDs []string) (*Message, error) {
	var msg Message
	req := modifyLabelsRequest{AddLabelIDs: addLabelIDs, RemoveLabelIDs: removeLabelIDs}
	if err := c.transport.post(ctx, "/users/me/messages/"+id+"/modify", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// BatchModifyMessages applies the same label changes to many messages.
// The API returns no body for this call.
func (c *Client) BatchModifyMessages(ctx context.Context, ids, addLabelIDs, removeLabelIDs []string) error {
	req := batchModifyRequest{IDs: ids, AddLabelIDs: addLabelIDs, RemoveLabelIDs: removeLabelIDs}
	return c.transport.post(ctx, "/users/me/messages/batchModify", req, nil)
}

// TrashMessage moves a message to the trash.
func (c *Client) TrashMessage(ctx context.Context, id string) (*Message, error) {
	var msg Message
	if err := c.transport.post(ctx, "/users/me/messages/"+id+"/trash", nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// UntrashMessage moves a message out of the trash.
func (c *Client) UntrashMessage(ctx context.Context, id string) (*Message, error) {
	var msg Message
	if err := c.transport.post(ctx, "/users/me/messages/"+id+"/untrash", nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage permanently deletes a message, bypassing the trash.
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	return c.transport.delete(ctx, "/users/me/messages/"+id)
}

// RawBody is the text content extracted from a raw RFC 2822 message.
type RawBody struct {
	Text string
	HTML string
}

// ParseRawMessage decodes a raw-format message body (as returned with
// FormatRaw) and extracts its inline text and HTML parts.
func ParseRawMessage(raw string) (*RawBody, error) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(raw, "="))
	if err != nil {
		return nil, fmt.Errorf("gmail: decoding raw message: %w", err)
	}
	reader, err := gomail.CreateReader(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("gmail: parsing raw message: %w", err)
	}
	defer reader.Close()

	var body RawBody
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gmail: reading message part: %w", err)
		}
		header, ok := part.Header.(*gomail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, err := header.ContentType()
		if err != nil {
			continue
		}
		content, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		switch contentType {
		case "text/plain":
			if body.Text == "" {
				body.Text = string(content)
			}
		case "text/html":
			if body.HTML == "" {
				body.HTML = string(content)
			}
		}
	}
	return &body, nil
}
