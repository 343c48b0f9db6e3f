package gmail

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/nalgeon/be"
)

func TestListMessagesDefaults(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("GET", "/users/me/messages", MessageList{
		Messages: []MessageRef{{ID: "m1", ThreadID: "t1"}},
	})

	list, err := client.ListMessages(context.Background(), ListMessagesInput{})
	be.Err(t, err, nil)
	be.Equal(t, len(list.Messages), 1)
	be.Equal(t, list.Messages[0].ID, "m1")

	req := api.last()
	be.Equal(t, req.Query["maxResults"], "10")
	be.Equal(t, req.Query["q"], "")
}

func TestListMessagesEmptyResult(t *testing.T) {
	client, api := newTestClient(t)
	// No "messages" key at all, the way the API answers an empty mailbox.
	api.respond("GET", "/users/me/messages", map[string]any{"resultSizeEstimate": 0})

	list, err := client.ListMessages(context.Background(), ListMessagesInput{Query: "is:unread"})
	be.Err(t, err, nil)
	be.True(t, list.Messages == nil)
	be.Equal(t, api.last().Query["q"], "is:unread")
}

func TestGetMessageFormat(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("GET", "/users/me/messages/m1", Message{ID: "m1", ThreadID: "t1"})

	_, err := client.GetMessage(context.Background(), GetMessageInput{ID: "m1"})
	be.Err(t, err, nil)
	be.Equal(t, api.last().Query["format"], "full")

	_, err = client.GetMessage(context.Background(), GetMessageInput{
		ID:              "m1",
		Format:          FormatMetadata,
		MetadataHeaders: []string{"From"},
	})
	be.Err(t, err, nil)
	req := api.last()
	be.Equal(t, req.Query["format"], "metadata")
	be.Equal(t, req.Query["metadataHeaders"], "From")
}

func TestSendMessage(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("POST", "/users/me/messages/send", Message{ID: "sent-1", ThreadID: "t9"})

	msg, err := client.SendMessage(context.Background(), SendMessageInput{
		To:       "ada@example.com",
		Subject:  "hello",
		Body:     "body",
		ThreadID: "t9",
	})
	be.Err(t, err, nil)
	be.Equal(t, msg.ID, "sent-1")

	req := api.last()
	be.Equal(t, req.Body["threadId"], "t9")
	raw, ok := req.Body["raw"].(string)
	be.True(t, ok)
	decoded, err := base64.RawURLEncoding.DecodeString(raw)
	be.Err(t, err, nil)
	be.True(t, len(decoded) > 0)
}

func TestModifyMessage(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("POST", "/users/me/messages/m1/modify", Message{ID: "m1", LabelIDs: []string{"STARRED"}})

	msg, err := client.ModifyMessage(context.Background(), "m1", []string{"STARRED"}, []string{"UNREAD"})
	be.Err(t, err, nil)
	be.Equal(t, msg.LabelIDs[0], "STARRED")

	body := api.last().Body
	be.Equal(t, body["addLabelIds"].([]any)[0], "STARRED")
	be.Equal(t, body["removeLabelIds"].([]any)[0], "UNREAD")
}

func TestBatchModifyMessages(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("POST", "/users/me/messages/batchModify", nil)

	err := client.BatchModifyMessages(context.Background(), []string{"m1", "m2"}, []string{"STARRED"}, nil)
	be.Err(t, err, nil)

	body := api.last().Body
	ids := body["ids"].([]any)
	be.Equal(t, len(ids), 2)
}

func TestTrashAndDeleteMessage(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("POST", "/users/me/messages/m1/trash", Message{ID: "m1"})
	api.respond("POST", "/users/me/messages/m1/untrash", Message{ID: "m1"})
	api.respond("DELETE", "/users/me/messages/m1", nil)

	_, err := client.TrashMessage(context.Background(), "m1")
	be.Err(t, err, nil)
	_, err = client.UntrashMessage(context.Background(), "m1")
	be.Err(t, err, nil)
	be.Err(t, client.DeleteMessage(context.Background(), "m1"), nil)
	be.Equal(t, api.last().Method, http.MethodDelete)
}

func TestMessagePartHeaderLookup(t *testing.T) {
	part := &MessagePart{Headers: []Header{
		{Name: "From", Value: "ada@example.com"},
		{Name: "subject", Value: "hi"},
	}}
	be.Equal(t, part.Header("from"), "ada@example.com")
	be.Equal(t, part.Header("Subject"), "hi")
	be.Equal(t, part.Header("Cc"), "")

	var nilPart *MessagePart
	be.Equal(t, nilPart.Header("From"), "")
}

func TestParseRawMessage(t *testing.T) {
	outgoing := BuildSimple("ada@example.com", "hello", "plain body", "me@example.com", "", "", "<p>html body</p>")
	raw := EncodeMessage(outgoing)

	body, err := ParseRawMessage(raw)
	be.Err(t, err, nil)
	be.Equal(t, body.Text, "plain body")
	be.Equal(t, body.HTML, "<p>html body</p>")
}
