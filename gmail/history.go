package gmail

import (
	"context"
	"net/url"
	"strconv"
)

// HistoryMessage pairs a change record with the affected message.
type HistoryMessage struct {
	Message *Message `json:"message"`
}

// HistoryLabelChange records labels added to or removed from a message.
type HistoryLabelChange struct {
	Message  *Message `json:"message"`
	LabelIDs []string `json:"labelIds"`
}

// HistoryRecord is one entry in the mailbox change log.
type HistoryRecord struct {
	ID              string               `json:"id"`
	Messages        []*Message           `json:"messages,omitempty"`
	MessagesAdded   []HistoryMessage     `json:"messagesAdded,omitempty"`
	MessagesDeleted []HistoryMessage     `json:"messagesDeleted,omitempty"`
	LabelsAdded     []HistoryLabelChange `json:"labelsAdded,omitempty"`
	LabelsRemoved   []HistoryLabelChange `json:"labelsRemoved,omitempty"`
}

// HistoryList is one page of change records. History is nil when nothing
// changed since the starting point.
type HistoryList struct {
	History       []HistoryRecord `json:"history"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
	HistoryID     string          `json:"historyId,omitempty"`
}

// ListHistoryInput holds the parameters for ListHistory.
type ListHistoryInput struct {
	// StartHistoryID is the point to read changes from, typically a
	// historyId saved from an earlier message or profile fetch.
	StartHistoryID string

	// LabelID restricts results to changes involving one label.
	LabelID string

	// MaxResults caps the page size. Zero means 100.
	MaxResults int64

	// PageToken continues a previous listing.
	PageToken string

	// HistoryTypes restricts the kinds of change returned, e.g.
	// "messageAdded", "labelRemoved".
	HistoryTypes []string
}

// ListHistory returns mailbox changes since a history ID. A 404 response
// means the starting point is too old and a full resync is needed.
func (c *Client) ListHistory(ctx context.Context, input ListHistoryInput) (*HistoryList, error) {
	maxResults := input.MaxResults
	if maxResults == 0 {
		maxResults = 100
	}
	query := url.Values{}
	query.Set("startHistoryId", input.StartHistoryID)
	query.Set("maxResults", strconv.FormatInt(maxResults, 10))
	if input.LabelID != "" {
		query.Set("labelId", input.LabelID)
	}
	if input.PageToken != "" {
		query.Set("pageToken", input.PageToken)
	}
	for _, t := range input.HistoryTypes {
		query.Add("historyTypes", t)
	}

	var list HistoryList
	if err := c.transport.get(ctx, "/users/me/history", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
