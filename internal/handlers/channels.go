package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/logging"
	"github.com/LuiFig19/TaskChrono-sub001/internal/middleware"
	"github.com/LuiFig19/TaskChrono-sub001/internal/models"
)

type channelStore interface {
	CreateChannel(ctx context.Context, arg db.CreateChannelParams) (db.Channel, error)
	ListChannelsByOrganization(ctx context.Context, organizationID string) ([]db.Channel, error)
	IsOrganizationMember(ctx context.Context, arg db.IsOrganizationMemberParams) (int64, error)
}

// ChannelHandler manages chat channels within an organization.
type ChannelHandler struct {
	store channelStore
}

// NewChannelHandler creates a ChannelHandler backed by the given store.
func NewChannelHandler(store channelStore) *ChannelHandler {
	return &ChannelHandler{store: store}
}

// Create adds a channel to the organization.
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")
	claims := middleware.GetClaims(r.Context())

	if !memberOf(w, r, h.store, orgID, claims.UserID) {
		return
	}

	var req models.CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(strings.ToLower(req.Name))
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	channel, err := h.store.CreateChannel(r.Context(), db.CreateChannelParams{
		ID:             uuid.New().String(),
		OrganizationID: orgID,
		Name:           req.Name,
		CreatedBy:      claims.UserID,
	})
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to create channel", err)
		return
	}

	writeJSON(w, http.StatusCreated, channelToResponse(channel))
}

// List returns the organization's channels.
func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")
	claims := middleware.GetClaims(r.Context())

	if !memberOf(w, r, h.store, orgID, claims.UserID) {
		return
	}

	channels, err := h.store.ListChannelsByOrganization(r.Context(), orgID)
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to fetch channels", err)
		return
	}

	response := make([]models.ChannelResponse, len(channels))
	for i, ch := range channels {
		response[i] = channelToResponse(ch)
	}

	writeJSON(w, http.StatusOK, response)
}

// memberOf writes a 403 and returns false unless userID belongs to the
// organization. Shared across channel, message, and task handlers.
func memberOf(w http.ResponseWriter, r *http.Request, store interface {
	IsOrganizationMember(ctx context.Context, arg db.IsOrganizationMemberParams) (int64, error)
}, orgID, userID string) bool {
	isMember, err := store.IsOrganizationMember(r.Context(), db.IsOrganizationMemberParams{
		OrganizationID: orgID,
		UserID:         userID,
	})
	if err != nil || isMember == 0 {
		logging.LogSecurityEvent(r.Context(), logging.SecurityEventNotMember, "access to organization without membership")
		writeError(w, http.StatusForbidden, "access denied")
		return false
	}
	return true
}

func channelToResponse(ch db.Channel) models.ChannelResponse {
	return models.ChannelResponse{
		ID:        ch.ID,
		Name:      ch.Name,
		CreatedAt: ch.CreatedAt,
	}
}
