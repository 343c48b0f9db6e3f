package gmail

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func inlinePart(mimeType, text string) *MessagePart {
	return &MessagePart{
		MimeType: mimeType,
		Body: &MessagePartBody{
			Size: int64(len(text)),
			Data: base64.RawURLEncoding.EncodeToString([]byte(text)),
		},
	}
}

func TestExtractBodyDirect(t *testing.T) {
	body, ok := ExtractBody(inlinePart("text/plain", "hello"), "text/plain")
	be.True(t, ok)
	be.Equal(t, body, "hello")
}

func TestExtractBodyNested(t *testing.T) {
	payload := &MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*MessagePart{
					inlinePart("text/plain", "plain text"),
					inlinePart("text/html", "<p>html</p>"),
				},
			},
			inlinePart("application/pdf", "binary"),
		},
	}

	plain, ok := ExtractBody(payload, "text/plain")
	be.True(t, ok)
	be.Equal(t, plain, "plain text")

	html, ok := ExtractBody(payload, "text/html")
	be.True(t, ok)
	be.Equal(t, html, "<p>html</p>")
}

func TestExtractBodyFirstMatchWins(t *testing.T) {
	payload := &MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*MessagePart{
			inlinePart("text/plain", "first"),
			inlinePart("text/plain", "second"),
		},
	}
	body, ok := ExtractBody(payload, "text/plain")
	be.True(t, ok)
	be.Equal(t, body, "first")
}

func TestExtractBodyAbsent(t *testing.T) {
	_, ok := ExtractBody(nil, "text/plain")
	be.True(t, !ok)

	_, ok = ExtractBody(&MessagePart{MimeType: "text/html"}, "text/plain")
	be.True(t, !ok)

	// Matching type but no inline data, e.g. an attachment reference.
	_, ok = ExtractBody(&MessagePart{
		MimeType: "text/plain",
		Body:     &MessagePartBody{AttachmentID: "att-1", Size: 10},
	}, "text/plain")
	be.True(t, !ok)
}

func TestDecodeBodyDataTolerant(t *testing.T) {
	// Padded input is accepted even though the API emits unpadded data.
	padded := base64.URLEncoding.EncodeToString([]byte("hi"))
	be.True(t, strings.Contains(padded, "="))
	be.Equal(t, decodeBodyData(padded), "hi")

	// A corrupt tail keeps the bytes decoded so far.
	valid := base64.RawURLEncoding.EncodeToString([]byte("hello world!"))
	be.Equal(t, decodeBodyData(valid+"!"), "hello world!")

	// Invalid UTF-8 is replaced rather than returned raw.
	invalid := base64.RawURLEncoding.EncodeToString([]byte{0x68, 0x69, 0xff})
	be.Equal(t, decodeBodyData(invalid), "hi�")
}
