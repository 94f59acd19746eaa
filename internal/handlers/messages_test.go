package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/middleware"
	"github.com/LuiFig19/TaskChrono-sub001/internal/models"
	"github.com/LuiFig19/TaskChrono-sub001/internal/realtime"
	"github.com/LuiFig19/TaskChrono-sub001/internal/services"
)

type mockMessageStore struct {
	channel  db.Channel
	isMember int64
	message  db.Message
	user     db.User
	likes    int64

	deleted []int64
	liked   []db.LikeMessageParams
}

func (m *mockMessageStore) GetChannelByID(ctx context.Context, id string) (db.Channel, error) {
	if m.channel.ID == "" {
		return db.Channel{}, sql.ErrNoRows
	}
	return m.channel, nil
}

func (m *mockMessageStore) IsOrganizationMember(ctx context.Context, arg db.IsOrganizationMemberParams) (int64, error) {
	return m.isMember, nil
}

func (m *mockMessageStore) CreateMessage(ctx context.Context, arg db.CreateMessageParams) (db.Message, error) {
	return db.Message{
		ID:             7,
		OrganizationID: arg.OrganizationID,
		ChannelID:      arg.ChannelID,
		UserID:         arg.UserID,
		Body:           arg.Body,
		CreatedAt:      time.Now(),
	}, nil
}

func (m *mockMessageStore) GetMessageByID(ctx context.Context, id int64) (db.Message, error) {
	if m.message.ID != id {
		return db.Message{}, sql.ErrNoRows
	}
	return m.message, nil
}

func (m *mockMessageStore) DeleteMessage(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockMessageStore) LikeMessage(ctx context.Context, arg db.LikeMessageParams) error {
	m.liked = append(m.liked, arg)
	return nil
}

func (m *mockMessageStore) CountMessageLikes(ctx context.Context, messageID int64) (int64, error) {
	return m.likes, nil
}

func (m *mockMessageStore) ListRecentMessages(ctx context.Context, arg db.ListRecentMessagesParams) ([]db.ListRecentMessagesRow, error) {
	return nil, nil
}

func (m *mockMessageStore) GetUserByID(ctx context.Context, id string) (db.User, error) {
	if m.user.ID == "" {
		return db.User{}, sql.ErrNoRows
	}
	return m.user, nil
}

func authedRequest(method, target, userID string, params map[string]string, body io.Reader) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(context.Background(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.ClaimsKey, &services.Claims{UserID: userID})
	return httptest.NewRequest(method, target, body).WithContext(ctx)
}

// frameCollector subscribes to a topic and records every frame broadcast to
// it, so write-path tests can assert on fan-out behavior.
func collectFrames(reg *realtime.Registry, topic string) *[]string {
	frames := &[]string{}
	reg.Subscribe(topic, realtime.NewSubscriber(func(frame []byte) {
		*frames = append(*frames, string(frame))
	}))
	return frames
}

func TestMessageHandler_Send_BroadcastsToChannelTopic(t *testing.T) {
	store := &mockMessageStore{
		channel:  db.Channel{ID: "chan-1", OrganizationID: "org-1"},
		isMember: 1,
		user:     db.User{ID: "user-1", Name: "Ada"},
	}
	reg := realtime.NewRegistry()
	handler := NewMessageHandler(store, reg, 100)

	frames := collectFrames(reg, realtime.ChatTopic("org-1", "chan-1"))

	body, _ := json.Marshal(models.SendMessageRequest{Body: "hello there"})
	req := authedRequest(http.MethodPost, "/messages", "user-1",
		map[string]string{"orgId": "org-1", "channelId": "chan-1"}, bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Send(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if len(*frames) != 1 {
		t.Fatalf("broadcast %d frames, want 1", len(*frames))
	}
	if !strings.HasPrefix((*frames)[0], "event: message\n") || !strings.Contains((*frames)[0], `"body":"hello there"`) {
		t.Errorf("unexpected frame: %q", (*frames)[0])
	}
}

func TestMessageHandler_Send_RejectsEmptyBody(t *testing.T) {
	store := &mockMessageStore{
		channel:  db.Channel{ID: "chan-1", OrganizationID: "org-1"},
		isMember: 1,
	}
	handler := NewMessageHandler(store, realtime.NewRegistry(), 100)

	body, _ := json.Marshal(models.SendMessageRequest{Body: "   "})
	req := authedRequest(http.MethodPost, "/messages", "user-1",
		map[string]string{"orgId": "org-1", "channelId": "chan-1"}, bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Send(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestMessageHandler_Send_RejectsNonMember(t *testing.T) {
	store := &mockMessageStore{
		channel:  db.Channel{ID: "chan-1", OrganizationID: "org-1"},
		isMember: 0,
	}
	handler := NewMessageHandler(store, realtime.NewRegistry(), 100)

	body, _ := json.Marshal(models.SendMessageRequest{Body: "hi"})
	req := authedRequest(http.MethodPost, "/messages", "user-1",
		map[string]string{"orgId": "org-1", "channelId": "chan-1"}, bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Send(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}

func TestMessageHandler_Send_RejectsForeignChannel(t *testing.T) {
	store := &mockMessageStore{
		channel:  db.Channel{ID: "chan-1", OrganizationID: "other-org"},
		isMember: 1,
	}
	handler := NewMessageHandler(store, realtime.NewRegistry(), 100)

	body, _ := json.Marshal(models.SendMessageRequest{Body: "hi"})
	req := authedRequest(http.MethodPost, "/messages", "user-1",
		map[string]string{"orgId": "org-1", "channelId": "chan-1"}, bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Send(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestMessageHandler_Delete(t *testing.T) {
	store := &mockMessageStore{
		channel:  db.Channel{ID: "chan-1", OrganizationID: "org-1"},
		isMember: 1,
		message:  db.Message{ID: 7, ChannelID: "chan-1", UserID: "user-1"},
	}
	reg := realtime.NewRegistry()
	handler := NewMessageHandler(store, reg, 100)

	frames := collectFrames(reg, realtime.ChatTopic("org-1", "chan-1"))

	req := authedRequest(http.MethodDelete, "/messages/7", "user-1",
		map[string]string{"orgId": "org-1", "channelId": "chan-1", "messageId": "7"}, nil)
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if len(store.deleted) != 1 || store.deleted[0] != 7 {
		t.Errorf("deleted = %v, want [7]", store.deleted)
	}
	if len(*frames) != 1 || !strings.HasPrefix((*frames)[0], "event: deleted\n") {
		t.Errorf("expected one deleted frame, got %v", *frames)
	}
}

func TestMessageHandler_Delete_OnlyOwnMessages(t *testing.T) {
	store := &mockMessageStore{
		channel:  db.Channel{ID: "chan-1", OrganizationID: "org-1"},
		isMember: 1,
		message:  db.Message{ID: 7, ChannelID: "chan-1", UserID: "someone-else"},
	}
	handler := NewMessageHandler(store, realtime.NewRegistry(), 100)

	req := authedRequest(http.MethodDelete, "/messages/7", "user-1",
		map[string]string{"orgId": "org-1", "channelId": "chan-1", "messageId": "7"}, nil)
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if len(store.deleted) != 0 {
		t.Errorf("deleted = %v, want none", store.deleted)
	}
}

func TestMessageHandler_Like_BroadcastsUpdatedCount(t *testing.T) {
	store := &mockMessageStore{
		channel:  db.Channel{ID: "chan-1", OrganizationID: "org-1"},
		isMember: 1,
		message:  db.Message{ID: 7, ChannelID: "chan-1", UserID: "someone-else"},
		likes:    3,
	}
	reg := realtime.NewRegistry()
	handler := NewMessageHandler(store, reg, 100)

	frames := collectFrames(reg, realtime.ChatTopic("org-1", "chan-1"))

	req := authedRequest(http.MethodPost, "/messages/7/like", "user-1",
		map[string]string{"orgId": "org-1", "channelId": "chan-1", "messageId": "7"}, nil)
	rec := httptest.NewRecorder()

	handler.Like(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(store.liked) != 1 || store.liked[0].UserID != "user-1" {
		t.Errorf("liked = %v, want one like by user-1", store.liked)
	}
	if len(*frames) != 1 || !strings.HasPrefix((*frames)[0], "event: liked\n") || !strings.Contains((*frames)[0], `"likes":3`) {
		t.Errorf("expected one liked frame with count, got %v", *frames)
	}
}
