package gmail

import (
	"context"
	"strings"
)

const noBodyPlaceholder = "(no text body found)"

var (
	replyMetadataHeaders    = []string{"From", "Subject", "Message-ID", "References", "Reply-To"}
	replyAllMetadataHeaders = []string{"From", "To", "Cc", "Subject", "Message-ID", "References", "Reply-To"}
)

// Reply sends a reply to the sender of a message. The reply goes to the
// original's Reply-To address when one is set, otherwise to From, threaded
// into the original conversation.
func (c *Client) Reply(ctx context.Context, messageID, body string) (*Message, error) {
	original, err := c.GetMessage(ctx, GetMessageInput{
		ID:              messageID,
		Format:          FormatMetadata,
		MetadataHeaders: replyMetadataHeaders,
	})
	if err != nil {
		return nil, err
	}

	to := original.Payload.Header("Reply-To")
	if strings.TrimSpace(to) == "" {
		to = original.Payload.Header("From")
	}

	outgoing := OutgoingMessage{
		To:         to,
		Subject:    prefixSubject("Re:", original.Payload.Header("Subject")),
		TextBody:   body,
		References: original.Payload.Header("References"),
	}
	outgoing = BuildReply(outgoing, original.Payload.Header("Message-ID"))
	return c.SendRawMessage(ctx, EncodeMessage(outgoing), original.ThreadID)
}

// ReplyAll replies to the sender and copies every other original recipient
// except the caller's own address.
func (c *Client) ReplyAll(ctx context.Context, messageID, body string) (*Message, error) {
	original, err := c.GetMessage(ctx, GetMessageInput{
		ID:              messageID,
		Format:          FormatMetadata,
		MetadataHeaders: replyAllMetadataHeaders,
	})
	if err != nil {
		return nil, err
	}
	profile, err := c.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	recipients := ResolveReplyAll(ReplyAllHeaders{
		From:    original.Payload.Header("From"),
		To:      original.Payload.Header("To"),
		Cc:      original.Payload.Header("Cc"),
		ReplyTo: original.Payload.Header("Reply-To"),
	}, profile.EmailAddress)

	outgoing := OutgoingMessage{
		To:         recipients.To,
		Cc:         FormatAddressList(recipients.Cc),
		Subject:    prefixSubject("Re:", original.Payload.Header("Subject")),
		TextBody:   body,
		References: original.Payload.Header("References"),
	}
	outgoing = BuildReply(outgoing, original.Payload.Header("Message-ID"))
	return c.SendRawMessage(ctx, EncodeMessage(outgoing), original.ThreadID)
}

// Forward sends a message's text body on to a new recipient with an
// optional note above the forwarded content. The forward starts a new
// thread.
func (c *Client) Forward(ctx context.Context, messageID, to, note string) (*Message, error) {
	original, err := c.GetMessage(ctx, GetMessageInput{ID: messageID, Format: FormatFull})
	if err != nil {
		return nil, err
	}

	originalBody, ok := ExtractBody(original.Payload, "text/plain")
	if !ok {
		originalBody = noBodyPlaceholder
	}

	outgoing := OutgoingMessage{
		To:      to,
		Subject: prefixSubject("Fwd:", original.Payload.Header("Subject")),
	}
	outgoing = BuildForward(outgoing, originalBody, note)
	return c.SendRawMessage(ctx, EncodeMessage(outgoing), "")
}

// MarkAsRead removes the UNREAD label from a message.
func (c *Client) MarkAsRead(ctx context.Context, messageID string) (*Message, error) {
	return c.ModifyMessage(ctx, messageID, nil, []string{LabelUnread})
}

// MarkAsUnread adds the UNREAD label to a message.
func (c *Client) MarkAsUnread(ctx context.Context, messageID string) (*Message, error) {
	return c.ModifyMessage(ctx, messageID, []string{LabelUnread}, nil)
}

// Archive removes a message from the inbox without deleting it.
func (c *Client) Archive(ctx context.Context, messageID string) (*Message, error) {
	return c.ModifyMessage(ctx, messageID, nil, []string{LabelInbox})
}

// prefixSubject prepends prefix unless the subject already starts with it,
// compared case-insensitively. "RE: hi" stays as it is for prefix "Re:".
func prefixSubject(prefix, subject string) string {
	if len(subject) >= len(prefix) && strings.EqualFold(subject[:len(prefix)], prefix) {
		return subject
	}
	return prefix + " " + subject
}
