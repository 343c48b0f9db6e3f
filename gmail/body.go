package gmail

import (
	"encoding/base64"
	"strings"
)

// ExtractBody walks a message payload depth-first looking for the first
// part of the given MIME type with inline data, and returns its decoded
// text. The second return reports whether such a part was found.
func ExtractBody(payload *MessagePart, mimeType string) (string, bool) {
	if payload == nil {
		return "", false
	}
	if payload.MimeType == mimeType && payload.Body != nil && payload.Body.Data != "" {
		return decodeBodyData(payload.Body.Data), true
	}
	for _, part := range payload.Parts {
		if body, ok := ExtractBody(part, mimeType); ok {
			return body, ok
		}
	}
	return "", false
}

// decodeBodyData decodes the API's base64url body data. Padding is
// tolerated even though the API emits none. Decoding is best-effort: on a
// malformed tail the bytes decoded so far are kept, and invalid UTF-8 is
// replaced rather than propagated.
func decodeBodyData(data string) string {
	data = strings.TrimRight(data, "=")
	decoded, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil && len(decoded) == 0 {
		return ""
	}
	return strings.ToValidUTF8(string(decoded), "�")
}
