package gmail

import "context"

// VacationSettings is the mailbox auto-reply configuration. Start and end
// times are epoch milliseconds, carried as strings on the wire.
type VacationSettings struct {
	EnableAutoReply       bool   `json:"enableAutoReply"`
	ResponseSubject       string `json:"responseSubject,omitempty"`
	ResponseBodyPlainText string `json:"responseBodyPlainText,omitempty"`
	ResponseBodyHTML      string `json:"responseBodyHtml,omitempty"`
	RestrictToContacts    bool   `json:"restrictToContacts,omitempty"`
	RestrictToDomain      bool   `json:"restrictToDomain,omitempty"`
	StartTime             int64  `json:"startTime,omitempty,string"`
	EndTime               int64  `json:"endTime,omitempty,string"`
}

// GetVacationSettings fetches the current auto-reply configuration.
func (c *Client) GetVacationSettings(ctx context.Context) (*VacationSettings, error) {
	var settings VacationSettings
	if err := c.transport.get(ctx, "/users/me/settings/vacation", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateVacationSettings replaces the auto-reply configuration wholesale.
func (c *Client) UpdateVacationSettings(ctx context.Context, settings VacationSettings) (*VacationSettings, error) {
	var updated VacationSettings
	if err := c.transport.put(ctx, "/users/me/settings/vacation", settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
