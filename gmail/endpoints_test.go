package gmail

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/nalgeon/be"
)

func TestThreadOperations(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("GET", "/users/me/threads", ThreadList{
		Threads: []ThreadRef{{ID: "t1", Snippet: "hi"}},
	})
	api.respond("GET", "/users/me/threads/t1", Thread{
		ID:       "t1",
		Messages: []*Message{{ID: "m1"}, {ID: "m2"}},
	})
	api.respond("POST", "/users/me/threads/t1/modify", Thread{ID: "t1"})
	api.respond("POST", "/users/me/threads/t1/trash", Thread{ID: "t1"})
	api.respond("POST", "/users/me/threads/t1/untrash", Thread{ID: "t1"})
	api.respond("DELETE", "/users/me/threads/t1", nil)

	ctx := context.Background()

	list, err := client.ListThreads(ctx, ListThreadsInput{Query: "is:unread"})
	be.Err(t, err, nil)
	be.Equal(t, list.Threads[0].ID, "t1")
	be.Equal(t, api.last().Query["maxResults"], "10")

	thread, err := client.GetThread(ctx, "t1", "")
	be.Err(t, err, nil)
	be.Equal(t, len(thread.Messages), 2)
	be.Equal(t, api.last().Query["format"], "full")

	_, err = client.ModifyThread(ctx, "t1", []string{"STARRED"}, nil)
	be.Err(t, err, nil)
	_, err = client.TrashThread(ctx, "t1")
	be.Err(t, err, nil)
	_, err = client.UntrashThread(ctx, "t1")
	be.Err(t, err, nil)
	be.Err(t, client.DeleteThread(ctx, "t1"), nil)
}

func TestDraftOperations(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("GET", "/users/me/drafts", map[string]any{"resultSizeEstimate": 0})
	api.respond("POST", "/users/me/drafts", Draft{ID: "d1", Message: &Message{ID: "m1"}})
	api.respond("GET", "/users/me/drafts/d1", Draft{ID: "d1"})
	api.respond("POST", "/users/me/drafts/send", Message{ID: "m1", ThreadID: "t1"})
	api.respond("DELETE", "/users/me/drafts/d1", nil)

	ctx := context.Background()

	list, err := client.ListDrafts(ctx, 0, "")
	be.Err(t, err, nil)
	be.True(t, list.Drafts == nil)

	draft, err := client.CreateDraft(ctx, SendMessageInput{To: "ada@example.com", Subject: "draft", Body: "body"})
	be.Err(t, err, nil)
	be.Equal(t, draft.ID, "d1")
	message := api.last().Body["message"].(map[string]any)
	raw, ok := message["raw"].(string)
	be.True(t, ok)
	_, err = base64.RawURLEncoding.DecodeString(raw)
	be.Err(t, err, nil)

	_, err = client.GetDraft(ctx, "d1", FormatMinimal)
	be.Err(t, err, nil)
	be.Equal(t, api.last().Query["format"], "minimal")

	sent, err := client.SendDraft(ctx, "d1")
	be.Err(t, err, nil)
	be.Equal(t, sent.ID, "m1")
	be.Equal(t, api.last().Body["id"], "d1")

	be.Err(t, client.DeleteDraft(ctx, "d1"), nil)
}

func TestLabelOperations(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("GET", "/users/me/labels", LabelList{Labels: []Label{
		{ID: "INBOX", Name: "INBOX", Type: "system"},
		{ID: "Label_1", Name: "receipts", Type: "user"},
	}})
	api.respond("GET", "/users/me/labels/Label_1", Label{ID: "Label_1", Name: "receipts", MessagesTotal: 4})
	api.respond("POST", "/users/me/labels", Label{ID: "Label_2", Name: "travel"})
	api.respond("PATCH", "/users/me/labels/Label_2", Label{ID: "Label_2", Name: "trips"})
	api.respond("DELETE", "/users/me/labels/Label_2", nil)

	ctx := context.Background()

	list, err := client.ListLabels(ctx)
	be.Err(t, err, nil)
	be.Equal(t, len(list.Labels), 2)

	label, err := client.GetLabel(ctx, "Label_1")
	be.Err(t, err, nil)
	be.Equal(t, label.MessagesTotal, int64(4))

	created, err := client.CreateLabel(ctx, "travel")
	be.Err(t, err, nil)
	be.Equal(t, created.ID, "Label_2")
	body := api.last().Body
	be.Equal(t, body["messageListVisibility"], "show")
	be.Equal(t, body["labelListVisibility"], "labelShow")

	updated, err := client.UpdateLabel(ctx, "Label_2", UpdateLabelInput{Name: "trips"})
	be.Err(t, err, nil)
	be.Equal(t, updated.Name, "trips")
	req := api.last()
	be.Equal(t, req.Method, http.MethodPatch)
	// Untouched fields stay out of the patch body.
	_, hasVisibility := req.Body["labelListVisibility"]
	be.True(t, !hasVisibility)

	be.Err(t, client.DeleteLabel(ctx, "Label_2"), nil)
}

func TestGetAttachment(t *testing.T) {
	client, api := newTestClient(t)
	content := []byte("attachment bytes")
	api.respond("GET", "/users/me/messages/m1/attachments/att-1", AttachmentBody{
		Size: int64(len(content)),
		Data: base64.RawURLEncoding.EncodeToString(content),
	})

	body, err := client.GetAttachment(context.Background(), "m1", "att-1")
	be.Err(t, err, nil)
	decoded, err := body.Bytes()
	be.Err(t, err, nil)
	be.Equal(t, string(decoded), "attachment bytes")
}

func TestFilterOperations(t *testing.T) {
	client, api := newTestClient(t)
	// The list response uses the singular "filter" key.
	api.respond("GET", "/users/me/settings/filters", map[string]any{
		"filter": []Filter{{ID: "f1"}},
	})
	api.respond("GET", "/users/me/settings/filters/f1", Filter{
		ID:       "f1",
		Criteria: &FilterCriteria{From: "noreply@example.com"},
		Action:   &FilterAction{AddLabelIDs: []string{"Label_1"}},
	})
	api.respond("POST", "/users/me/settings/filters", Filter{ID: "f2"})
	api.respond("DELETE", "/users/me/settings/filters/f1", nil)

	ctx := context.Background()

	list, err := client.ListFilters(ctx)
	be.Err(t, err, nil)
	be.Equal(t, len(list.Filters), 1)

	filter, err := client.GetFilter(ctx, "f1")
	be.Err(t, err, nil)
	be.Equal(t, filter.Criteria.From, "noreply@example.com")

	created, err := client.CreateFilter(ctx, Filter{
		ID:       "ignored",
		Criteria: &FilterCriteria{From: "spam@example.com"},
		Action:   &FilterAction{RemoveLabelIDs: []string{"INBOX"}},
	})
	be.Err(t, err, nil)
	be.Equal(t, created.ID, "f2")
	// The caller-supplied ID never reaches the wire.
	_, hasID := api.last().Body["id"]
	be.True(t, !hasID)

	be.Err(t, client.DeleteFilter(ctx, "f1"), nil)
}

func TestVacationSettings(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("GET", "/users/me/settings/vacation", map[string]any{
		"enableAutoReply": true,
		"responseSubject": "away",
		"startTime":       "1700000000000",
	})
	api.respond("PUT", "/users/me/settings/vacation", VacationSettings{EnableAutoReply: false})

	ctx := context.Background()

	settings, err := client.GetVacationSettings(ctx)
	be.Err(t, err, nil)
	be.True(t, settings.EnableAutoReply)
	be.Equal(t, settings.StartTime, int64(1700000000000))

	_, err = client.UpdateVacationSettings(ctx, VacationSettings{EnableAutoReply: false})
	be.Err(t, err, nil)
	be.Equal(t, api.last().Method, http.MethodPut)
}

func TestListHistory(t *testing.T) {
	client, api := newTestClient(t)
	api.respond("GET", "/users/me/history", HistoryList{
		History: []HistoryRecord{{
			ID:            "1001",
			MessagesAdded: []HistoryMessage{{Message: &Message{ID: "m1"}}},
		}},
		HistoryID: "1002",
	})

	list, err := client.ListHistory(context.Background(), ListHistoryInput{
		StartHistoryID: "1000",
		HistoryTypes:   []string{"messageAdded"},
	})
	be.Err(t, err, nil)
	be.Equal(t, list.History[0].MessagesAdded[0].Message.ID, "m1")

	req := api.last()
	be.Equal(t, req.Query["startHistoryId"], "1000")
	be.Equal(t, req.Query["maxResults"], "100")
	be.Equal(t, req.Query["historyTypes"], "messageAdded")
}

func TestListHistoryExpired(t *testing.T) {
	client, api := newTestClient(t)
	api.fail("GET", "/users/me/history", http.StatusNotFound, map[string]any{
		"error": map[string]any{"code": 404, "message": "History ID is too old."},
	})

	_, err := client.ListHistory(context.Background(), ListHistoryInput{StartHistoryID: "1"})
	apiErr, ok := AsAPIError(err)
	be.True(t, ok)
	be.Equal(t, apiErr.StatusCode, http.StatusNotFound)
}
