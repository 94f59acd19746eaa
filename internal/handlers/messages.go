package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/middleware"
	"github.com/LuiFig19/TaskChrono-sub001/internal/models"
	"github.com/LuiFig19/TaskChrono-sub001/internal/realtime"
)

type messageStore interface {
	GetChannelByID(ctx context.Context, id string) (db.Channel, error)
	IsOrganizationMember(ctx context.Context, arg db.IsOrganizationMemberParams) (int64, error)
	CreateMessage(ctx context.Context, arg db.CreateMessageParams) (db.Message, error)
	GetMessageByID(ctx context.Context, id int64) (db.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
	LikeMessage(ctx context.Context, arg db.LikeMessageParams) error
	CountMessageLikes(ctx context.Context, messageID int64) (int64, error)
	ListRecentMessages(ctx context.Context, arg db.ListRecentMessagesParams) ([]db.ListRecentMessagesRow, error)
	GetUserByID(ctx context.Context, id string) (db.User, error)
}

// MessageHandler manages channel messages. Every write persists first, then
// broadcasts to the channel's chat topic; broadcast failures never surface
// to the caller.
type MessageHandler struct {
	store    messageStore
	registry *realtime.Registry
	limit    int
}

// NewMessageHandler creates a MessageHandler. limit caps history responses.
func NewMessageHandler(store messageStore, registry *realtime.Registry, limit int) *MessageHandler {
	return &MessageHandler{store: store, registry: registry, limit: limit}
}

// channelInOrg resolves the channel and verifies it belongs to the routed
// organization and that the caller is a member. Returns false after writing
// the error response.
func (h *MessageHandler) channelInOrg(w http.ResponseWriter, r *http.Request) (db.Channel, bool) {
	orgID := chi.URLParam(r, "orgId")
	channelID := chi.URLParam(r, "channelId")
	claims := middleware.GetClaims(r.Context())

	if !memberOf(w, r, h.store, orgID, claims.UserID) {
		return db.Channel{}, false
	}

	channel, err := h.store.GetChannelByID(r.Context(), channelID)
	if err != nil || channel.OrganizationID != orgID {
		writeError(w, http.StatusNotFound, "channel not found")
		return db.Channel{}, false
	}

	return channel, true
}

// List returns the channel's most recent messages in ascending time order.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	channel, ok := h.channelInOrg(w, r)
	if !ok {
		return
	}

	rows, err := h.store.ListRecentMessages(r.Context(), db.ListRecentMessagesParams{
		OrganizationID: channel.OrganizationID,
		ChannelID:      channel.ID,
		Limit:          int64(h.limit),
	})
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to fetch messages", err)
		return
	}

	response := make([]models.MessageResponse, len(rows))
	for i, row := range rows {
		response[i] = models.MessageResponse{
			ID:        row.ID,
			ChannelID: row.ChannelID,
			UserID:    row.UserID,
			UserName:  row.UserName,
			Body:      row.Body,
			Likes:     row.Likes,
			CreatedAt: row.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// Send persists a message and broadcasts it to the channel's subscribers.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	channel, ok := h.channelInOrg(w, r)
	if !ok {
		return
	}
	claims := middleware.GetClaims(r.Context())

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Body = strings.TrimSpace(req.Body)
	if req.Body == "" {
		writeError(w, http.StatusBadRequest, "body is required")
		return
	}

	message, err := h.store.CreateMessage(r.Context(), db.CreateMessageParams{
		OrganizationID: channel.OrganizationID,
		ChannelID:      channel.ID,
		UserID:         claims.UserID,
		Body:           req.Body,
	})
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to create message", err)
		return
	}

	userName := ""
	if user, err := h.store.GetUserByID(r.Context(), claims.UserID); err == nil {
		userName = user.Name
	}

	h.registry.Broadcast(realtime.ChatTopic(channel.OrganizationID, channel.ID), realtime.ChatMessage{
		ID:        message.ID,
		ChannelID: message.ChannelID,
		UserID:    message.UserID,
		UserName:  userName,
		Body:      message.Body,
		Likes:     0,
		CreatedAt: message.CreatedAt,
	})

	writeJSON(w, http.StatusCreated, models.MessageResponse{
		ID:        message.ID,
		ChannelID: message.ChannelID,
		UserID:    message.UserID,
		UserName:  userName,
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	})
}

// Delete removes the caller's own message and broadcasts the deletion.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	channel, ok := h.channelInOrg(w, r)
	if !ok {
		return
	}
	claims := middleware.GetClaims(r.Context())

	messageID, err := strconv.ParseInt(chi.URLParam(r, "messageId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid message ID")
		return
	}

	message, err := h.store.GetMessageByID(r.Context(), messageID)
	if err != nil || message.ChannelID != channel.ID {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}

	if message.UserID != claims.UserID {
		writeError(w, http.StatusForbidden, "can only delete your own messages")
		return
	}

	if err := h.store.DeleteMessage(r.Context(), messageID); err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to delete message", err)
		return
	}

	h.registry.Broadcast(realtime.ChatTopic(channel.OrganizationID, channel.ID), realtime.ChatDeleted{
		ID:        messageID,
		ChannelID: channel.ID,
	})

	w.WriteHeader(http.StatusNoContent)
}

// Like records a like and broadcasts the updated count. The channel ID for
// the broadcast comes from the message row already in hand.
func (h *MessageHandler) Like(w http.ResponseWriter, r *http.Request) {
	channel, ok := h.channelInOrg(w, r)
	if !ok {
		return
	}
	claims := middleware.GetClaims(r.Context())

	messageID, err := strconv.ParseInt(chi.URLParam(r, "messageId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid message ID")
		return
	}

	message, err := h.store.GetMessageByID(r.Context(), messageID)
	if err != nil || message.ChannelID != channel.ID {
		writeError(w, http.StatusNotFound, "message not found")
		return
	}

	if err := h.store.LikeMessage(r.Context(), db.LikeMessageParams{
		MessageID: messageID,
		UserID:    claims.UserID,
	}); err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to like message", err)
		return
	}

	likes, err := h.store.CountMessageLikes(r.Context(), messageID)
	if err != nil {
		likes = 0
	}

	h.registry.Broadcast(realtime.ChatTopic(channel.OrganizationID, channel.ID), realtime.ChatLiked{
		ID:        messageID,
		ChannelID: message.ChannelID,
		UserID:    claims.UserID,
		Likes:     likes,
	})

	writeJSON(w, http.StatusOK, map[string]int64{"likes": likes})
}
