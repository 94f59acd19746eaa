package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/logging"
	"github.com/LuiFig19/TaskChrono-sub001/internal/middleware"
	"github.com/LuiFig19/TaskChrono-sub001/internal/models"
	"github.com/LuiFig19/TaskChrono-sub001/internal/realtime"
	"github.com/LuiFig19/TaskChrono-sub001/internal/services"
)

type orgStore interface {
	activityStore
	CreateOrganization(ctx context.Context, arg db.CreateOrganizationParams) (db.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (db.Organization, error)
	GetOrganizationByInviteKey(ctx context.Context, inviteKey string) (db.Organization, error)
	AddOrganizationMember(ctx context.Context, arg db.AddOrganizationMemberParams) error
	IsOrganizationMember(ctx context.Context, arg db.IsOrganizationMemberParams) (int64, error)
	ListOrganizationMembers(ctx context.Context, organizationID string) ([]db.ListOrganizationMembersRow, error)
	ListOrganizationsByUser(ctx context.Context, userID string) ([]db.Organization, error)
	CreateChannel(ctx context.Context, arg db.CreateChannelParams) (db.Channel, error)
}

// OrgHandler manages organization lifecycle and membership.
type OrgHandler struct {
	store            orgStore
	inviteKeyService *services.InviteKeyService
	registry         *realtime.Registry
}

// NewOrgHandler creates an OrgHandler with the required dependencies.
func NewOrgHandler(store orgStore, inviteKeyService *services.InviteKeyService, registry *realtime.Registry) *OrgHandler {
	return &OrgHandler{
		store:            store,
		inviteKeyService: inviteKeyService,
		registry:         registry,
	}
}

// Create initializes a new organization with the caller as owner and a
// default "all" channel.
func (h *OrgHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req models.CreateOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	inviteKey, err := h.inviteKeyService.Generate(r.Context())
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to generate invite key", err)
		return
	}

	org, err := h.store.CreateOrganization(r.Context(), db.CreateOrganizationParams{
		ID:        uuid.New().String(),
		Name:      req.Name,
		InviteKey: inviteKey,
		OwnerID:   claims.UserID,
	})
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to create organization", err)
		return
	}

	if err := h.store.AddOrganizationMember(r.Context(), db.AddOrganizationMemberParams{
		OrganizationID: org.ID,
		UserID:         claims.UserID,
		Role:           "owner",
	}); err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to add owner membership", err)
		return
	}

	// Every organization starts with an "all" channel.
	if _, err := h.store.CreateChannel(r.Context(), db.CreateChannelParams{
		ID:             uuid.New().String(),
		OrganizationID: org.ID,
		Name:           "all",
		CreatedBy:      claims.UserID,
	}); err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to create default channel", err)
		return
	}

	recordActivity(r.Context(), h.store, h.registry, claims.UserID, "org_created", org.Name)

	writeJSON(w, http.StatusCreated, orgToResponse(org, true))
}

// Join adds the caller to the organization matching the invite key.
func (h *OrgHandler) Join(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	var req models.JoinOrganizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := strings.ToLower(strings.TrimSpace(req.InviteKey))
	org, err := h.store.GetOrganizationByInviteKey(r.Context(), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logging.LogSecurityEvent(r.Context(), logging.SecurityEventBadInviteKey, "join with unknown invite key")
			writeError(w, http.StatusNotFound, "invalid invite key")
			return
		}
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to look up invite key", err)
		return
	}

	isMember, err := h.store.IsOrganizationMember(r.Context(), db.IsOrganizationMemberParams{
		OrganizationID: org.ID,
		UserID:         claims.UserID,
	})
	if err == nil && isMember > 0 {
		writeError(w, http.StatusConflict, "already a member")
		return
	}

	if err := h.store.AddOrganizationMember(r.Context(), db.AddOrganizationMemberParams{
		OrganizationID: org.ID,
		UserID:         claims.UserID,
		Role:           "member",
	}); err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to join organization", err)
		return
	}

	recordActivity(r.Context(), h.store, h.registry, claims.UserID, "org_joined", org.Name)

	writeJSON(w, http.StatusOK, orgToResponse(org, false))
}

// Get returns one organization the caller belongs to. The invite key is only
// included for the owner.
func (h *OrgHandler) Get(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")
	claims := middleware.GetClaims(r.Context())

	if !memberOf(w, r, h.store, orgID, claims.UserID) {
		return
	}

	org, err := h.store.GetOrganizationByID(r.Context(), orgID)
	if err != nil {
		writeError(w, http.StatusNotFound, "organization not found")
		return
	}

	writeJSON(w, http.StatusOK, orgToResponse(org, org.OwnerID == claims.UserID))
}

// ListMine returns the organizations the caller belongs to.
func (h *OrgHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	orgs, err := h.store.ListOrganizationsByUser(r.Context(), claims.UserID)
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to fetch organizations", err)
		return
	}

	response := make([]models.OrganizationResponse, len(orgs))
	for i, org := range orgs {
		response[i] = orgToResponse(org, org.OwnerID == claims.UserID)
	}

	writeJSON(w, http.StatusOK, response)
}

// ListMembers returns the member roster of an organization.
func (h *OrgHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")
	claims := middleware.GetClaims(r.Context())

	if !memberOf(w, r, h.store, orgID, claims.UserID) {
		return
	}

	members, err := h.store.ListOrganizationMembers(r.Context(), orgID)
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to fetch members", err)
		return
	}

	response := make([]models.MemberResponse, len(members))
	for i, m := range members {
		response[i] = models.MemberResponse{
			UserID:   m.UserID,
			Name:     m.Name,
			Email:    m.Email,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func orgToResponse(org db.Organization, includeKey bool) models.OrganizationResponse {
	resp := models.OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Plan:      org.Plan,
		CreatedAt: org.CreatedAt,
	}
	if includeKey {
		resp.InviteKey = org.InviteKey
	}
	return resp
}
