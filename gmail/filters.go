package gmail

import "context"

// FilterCriteria describes which incoming messages a filter matches.
type FilterCriteria struct {
	From           string `json:"from,omitempty"`
	To             string `json:"to,omitempty"`
	Subject        string `json:"subject,omitempty"`
	Query          string `json:"query,omitempty"`
	NegatedQuery   string `json:"negatedQuery,omitempty"`
	HasAttachment  bool   `json:"hasAttachment,omitempty"`
	ExcludeChats   bool   `json:"excludeChats,omitempty"`
	Size           int64  `json:"size,omitempty"`
	SizeComparison string `json:"sizeComparison,omitempty"`
}

// FilterAction describes what a filter does with a matched message.
type FilterAction struct {
	AddLabelIDs    []string `json:"addLabelIds,omitempty"`
	RemoveLabelIDs []string `json:"removeLabelIds,omitempty"`
	Forward        string   `json:"forward,omitempty"`
}

// Filter pairs criteria with an action.
type Filter struct {
	ID       string          `json:"id,omitempty"`
	Criteria *FilterCriteria `json:"criteria,omitempty"`
	Action   *FilterAction   `json:"action,omitempty"`
}

// FilterList holds every filter on the account; filters are not paginated.
// Note the singular "filter" key in the wire form.
type FilterList struct {
	Filters []Filter `json:"filter"`
}

// ListFilters returns all filters on the account.
func (c *Client) ListFilters(ctx context.Context) (*FilterList, error) {
	var list FilterList
	if err := c.transport.get(ctx, "/users/me/settings/filters", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetFilter fetches one filter.
func (c *Client) GetFilter(ctx context.Context, id string) (*Filter, error) {
	var filter Filter
	if err := c.transport.get(ctx, "/users/me/settings/filters/"+id, nil, &filter); err != nil {
		return nil, err
	}
	return &filter, nil
}

// CreateFilter creates a filter and returns it with its assigned ID.
func (c *Client) CreateFilter(ctx context.Context, filter Filter) (*Filter, error) {
	filter.ID = ""
	var created Filter
	if err := c.transport.post(ctx, "/users/me/settings/filters", filter, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteFilter removes a filter. Existing labels applied by it are kept.
func (c *Client) DeleteFilter(ctx context.Context, id string) error {
	return c.transport.delete(ctx, "/users/me/settings/filters/"+id)
}
