package gmail

import (
	"encoding/base64"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

const forwardBanner = "---------- Forwarded message ----------"

// OutgoingMessage describes a message to be rendered into RFC 2822 form
// before being handed to the API as base64url-encoded raw content.
type OutgoingMessage struct {
	To       string
	Cc       string
	Bcc      string
	From     string
	Subject  string
	TextBody string
	HTMLBody string

	// InReplyTo and References carry threading headers for replies.
	// Values are bare Message-IDs without angle brackets.
	InReplyTo  string
	References string
}

// BuildSimple assembles a standalone message with no threading headers.
func BuildSimple(to, subject, textBody, from, cc, bcc, htmlBody string) OutgoingMessage {
	return OutgoingMessage{
		To:       to,
		Cc:       cc,
		Bcc:      bcc,
		From:     from,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// BuildReply assembles a reply to the message identified by messageID (the
// value of its Message-ID header). References defaults to the replied-to
// message when the original carried none.
func BuildReply(msg OutgoingMessage, messageID string) OutgoingMessage {
	msg.InReplyTo = normalizeMessageID(messageID)
	if msg.References == "" {
		msg.References = msg.InReplyTo
	} else {
		msg.References = normalizeMessageID(msg.References)
	}
	return msg
}

// BuildForward assembles a forward: an optional note, a blank line, the
// banner, then the original body verbatim. The HTML body, when present, is
// passed through untouched.
func BuildForward(msg OutgoingMessage, originalBody, note string) OutgoingMessage {
	var b strings.Builder
	if note != "" {
		b.WriteString(note)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(forwardBanner)
	b.WriteString("\n")
	b.WriteString(originalBody)
	msg.TextBody = b.String()
	msg.InReplyTo = ""
	msg.References = ""
	return msg
}

// EncodeMessage renders msg and returns the unpadded base64url form the
// API's raw field expects.
func EncodeMessage(msg OutgoingMessage) string {
	return base64.RawURLEncoding.EncodeToString([]byte(renderMessage(msg)))
}

// renderMessage produces the full RFC 2822 text with CRLF line endings.
// When both text and HTML bodies are present the result is a
// multipart/alternative with the plain part first.
func renderMessage(msg OutgoingMessage) string {
	var b strings.Builder

	writeHeader := func(name, value string) {
		if value == "" {
			return
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(sanitizeHeader(value))
		b.WriteString("\r\n")
	}

	writeHeader("To", msg.To)
	writeHeader("From", msg.From)
	writeHeader("Cc", msg.Cc)
	writeHeader("Bcc", msg.Bcc)
	writeHeader("Subject", msg.Subject)
	writeHeader("Date", time.Now().Format(time.RFC1123Z))
	writeHeader("Message-ID", "<"+generateMessageID(msg.From)+">")
	if msg.InReplyTo != "" {
		writeHeader("In-Reply-To", "<"+msg.InReplyTo+">")
	}
	if msg.References != "" {
		writeHeader("References", "<"+msg.References+">")
	}
	b.WriteString("MIME-Version: 1.0\r\n")

	text := normalizeBody(msg.TextBody)
	html := normalizeBody(msg.HTMLBody)

	if html == "" {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
		b.WriteString("\r\n")
		b.WriteString(text)
		return b.String()
	}

	boundary := "part-" + uuid.NewString()
	b.WriteString("Content-Type: multipart/alternative; boundary=\"" + boundary + "\"\r\n")
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(text)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")

	b.WriteString("--" + boundary + "--\r\n")
	return b.String()
}

// sanitizeHeader strips CR and LF so caller-supplied values cannot inject
// additional headers.
func sanitizeHeader(value string) string {
	value = strings.ReplaceAll(value, "\r", "")
	return strings.ReplaceAll(value, "\n", " ")
}

// normalizeBody converts bare LF line endings to CRLF.
func normalizeBody(body string) string {
	if body == "" {
		return ""
	}
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\n", "\r\n")
}

// normalizeMessageID strips surrounding angle brackets and whitespace.
func normalizeMessageID(id string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimPrefix(id, "<")
	return strings.TrimSuffix(id, ">")
}

// generateMessageID builds a unique Message-ID using the sender's domain
// when one can be parsed out of from.
func generateMessageID(from string) string {
	domain := "mail.gmail-sdk.local"
	if addr, err := mail.ParseAddress(from); err == nil {
		if at := strings.LastIndex(addr.Address, "@"); at >= 0 && at < len(addr.Address)-1 {
			domain = addr.Address[at+1:]
		}
	}
	return fmt.Sprintf("%s@%s", uuid.NewString(), domain)
}
