package gmail

import "context"

// System label IDs used by the convenience operations.
const (
	LabelUnread = "UNREAD"
	LabelInbox  = "INBOX"
)

// Label is a system or user label.
type Label struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Type                  string `json:"type,omitempty"`
	MessageListVisibility string `json:"messageListVisibility,omitempty"`
	LabelListVisibility   string `json:"labelListVisibility,omitempty"`
	MessagesTotal         int64  `json:"messagesTotal,omitempty"`
	MessagesUnread        int64  `json:"messagesUnread,omitempty"`
	ThreadsTotal          int64  `json:"threadsTotal,omitempty"`
	ThreadsUnread         int64  `json:"threadsUnread,omitempty"`
}

// LabelList holds every label in the mailbox; labels are not paginated.
type LabelList struct {
	Labels []Label `json:"labels"`
}

type createLabelRequest struct {
	Name                  string `json:"name"`
	MessageListVisibility string `json:"messageListVisibility"`
	LabelListVisibility   string `json:"labelListVisibility"`
}

// UpdateLabelInput holds the fields of a label to change; empty fields are
// left as they are.
type UpdateLabelInput struct {
	Name                  string `json:"name,omitempty"`
	MessageListVisibility string `json:"messageListVisibility,omitempty"`
	LabelListVisibility   string `json:"labelListVisibility,omitempty"`
}

// ListLabels returns all labels in the mailbox.
func (c *Client) ListLabels(ctx context.Context) (*LabelList, error) {
	var list LabelList
	if err := c.transport.get(ctx, "/users/me/labels", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetLabel fetches one label, including its message and thread counts.
func (c *Client) GetLabel(ctx context.Context, id string) (*Label, error) {
	var label Label
	if err := c.transport.get(ctx, "/users/me/labels/"+id, nil, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// CreateLabel creates a user label visible in both the message list and
// the label list.
func (c *Client) CreateLabel(ctx context.Context, name string) (*Label, error) {
	var label Label
	req := createLabelRequest{
		Name:                  name,
		MessageListVisibility: "show",
		LabelListVisibility:   "labelShow",
	}
	if err := c.transport.post(ctx, "/users/me/labels", req, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// UpdateLabel patches a label with the non-empty fields of input.
func (c *Client) UpdateLabel(ctx context.Context, id string, input UpdateLabelInput) (*Label, error) {
	var label Label
	if err := c.transport.patch(ctx, "/users/me/labels/"+id, input, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

// DeleteLabel deletes a user label. The label is removed from any messages
// that carried it.
func (c *Client) DeleteLabel(ctx context.Context, id string) error {
	return c.transport.delete(ctx, "/users/me/labels/"+id)
}
