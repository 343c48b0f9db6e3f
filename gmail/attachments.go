package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// AttachmentBody is the content of one attachment part.
type AttachmentBody struct {
	Size int64  `json:"size"`
	Data string `json:"data"`
}

// Bytes decodes the attachment content. Both padded and unpadded base64url
// data are accepted.
func (b *AttachmentBody) Bytes() ([]byte, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(b.Data, "="))
	if err != nil {
		return nil, fmt.Errorf("gmail: decoding attachment data: %w", err)
	}
	return decoded, nil
}

// GetAttachment fetches the body of an attachment identified by the
// attachment ID found on a message part.
func (c *Client) GetAttachment(ctx context.Context, messageID, attachmentID string) (*AttachmentBody, error) {
	var body AttachmentBody
	path := "/users/me/messages/" + messageID + "/attachments/" + attachmentID
	if err := c.transport.get(ctx, path, nil, &body); err != nil {
		return nil, err
	}
	return &body, nil
}
