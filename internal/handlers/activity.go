package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/models"
	"github.com/LuiFig19/TaskChrono-sub001/internal/realtime"
)

type activityStore interface {
	CreateActivityEvent(ctx context.Context, arg db.CreateActivityEventParams) (db.ActivityEvent, error)
	GetUserByID(ctx context.Context, id string) (db.User, error)
	ListRecentActivity(ctx context.Context, limit int64) ([]db.ListRecentActivityRow, error)
}

// recordActivity persists an activity row and broadcasts it on the global
// feed. Activity is advisory: failures are logged, never surfaced to the
// request that produced them.
func recordActivity(ctx context.Context, store activityStore, registry *realtime.Registry, userID, kind, detail string) {
	event, err := store.CreateActivityEvent(ctx, db.CreateActivityEventParams{
		UserID: userID,
		Kind:   kind,
		Detail: detail,
	})
	if err != nil {
		slog.Warn("failed to record activity", slog.String("kind", kind), slog.Any("error", err))
		return
	}

	userName := ""
	if user, err := store.GetUserByID(ctx, userID); err == nil {
		userName = user.Name
	}

	registry.Broadcast(realtime.ActivityTopic, realtime.ActivityMessage{
		ID:        event.ID,
		Kind:      event.Kind,
		UserID:    event.UserID,
		UserName:  userName,
		Detail:    event.Detail,
		CreatedAt: event.CreatedAt,
	})
}

// ActivityHandler serves the recent slice of the global activity feed.
type ActivityHandler struct {
	store activityStore
	limit int
}

// NewActivityHandler creates an ActivityHandler that returns at most limit rows.
func NewActivityHandler(store activityStore, limit int) *ActivityHandler {
	return &ActivityHandler{store: store, limit: limit}
}

// List returns recent activity in ascending chronological order.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.ListRecentActivity(r.Context(), int64(h.limit))
	if err != nil {
		writeErrorWithCause(r.Context(), w, http.StatusInternalServerError, "failed to fetch activity", err)
		return
	}

	response := make([]models.ActivityResponse, len(rows))
	for i, row := range rows {
		response[i] = models.ActivityResponse{
			ID:        row.ID,
			Kind:      row.Kind,
			UserID:    row.UserID,
			UserName:  row.UserName,
			Detail:    row.Detail,
			CreatedAt: row.CreatedAt,
		}
	}

	writeJSON(w, http.StatusOK, response)
}
