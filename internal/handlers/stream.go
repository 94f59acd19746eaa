package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/LuiFig19/TaskChrono-sub001/internal/config"
	"github.com/LuiFig19/TaskChrono-sub001/internal/db"
	"github.com/LuiFig19/TaskChrono-sub001/internal/logging"
	"github.com/LuiFig19/TaskChrono-sub001/internal/middleware"
	"github.com/LuiFig19/TaskChrono-sub001/internal/realtime"
)

// streamFrameBuffer is the per-connection frame buffer. A subscriber whose
// buffer is full has further frames dropped (delivery is best-effort, and a
// client that slow is about to be timed out anyway).
const streamFrameBuffer = 64

type streamStore interface {
	GetChannelByID(ctx context.Context, id string) (db.Channel, error)
	IsOrganizationMember(ctx context.Context, arg db.IsOrganizationMemberParams) (int64, error)
	ListRecentMessages(ctx context.Context, arg db.ListRecentMessagesParams) ([]db.ListRecentMessagesRow, error)
	ListRecentActivity(ctx context.Context, limit int64) ([]db.ListRecentActivityRow, error)
	ListRunningTimersByUser(ctx context.Context, userID string) ([]db.Timer, error)
}

// StreamHandler serves the Server-Sent-Events endpoints: per-channel chat,
// per-user timers, and the global activity feed. Each open connection is one
// subscriber in the realtime registry.
type StreamHandler struct {
	store    streamStore
	registry *realtime.Registry
	cfg      *config.Config
}

// NewStreamHandler creates a StreamHandler with the required dependencies.
func NewStreamHandler(store streamStore, registry *realtime.Registry, cfg *config.Config) *StreamHandler {
	return &StreamHandler{store: store, registry: registry, cfg: cfg}
}

// Chat streams a channel's messages. The caller must be a member of the
// routed organization and the channel must belong to it.
func (h *StreamHandler) Chat(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgId")
	channelID := chi.URLParam(r, "channelId")
	claims := middleware.GetClaims(r.Context())

	if !memberOf(w, r, h.store, orgID, claims.UserID) {
		return
	}

	channel, err := h.store.GetChannelByID(r.Context(), channelID)
	if err != nil || channel.OrganizationID != orgID {
		logging.LogSecurityEvent(r.Context(), logging.SecurityEventNotMember, "stream attach to foreign channel")
		writeError(w, http.StatusForbidden, "access denied")
		return
	}

	topic := realtime.ChatTopic(orgID, channelID)
	h.serve(w, r, topic, h.cfg.ChatHeartbeat, func(ctx context.Context) []realtime.Event {
		rows, err := h.store.ListRecentMessages(ctx, db.ListRecentMessagesParams{
			OrganizationID: orgID,
			ChannelID:      channelID,
			Limit:          int64(h.cfg.BacklogLimit),
		})
		if err != nil {
			return nil
		}
		events := make([]realtime.Event, len(rows))
		for i, row := range rows {
			events[i] = realtime.ChatMessage{
				ID:        row.ID,
				ChannelID: row.ChannelID,
				UserID:    row.UserID,
				UserName:  row.UserName,
				Body:      row.Body,
				Likes:     row.Likes,
				CreatedAt: row.CreatedAt,
			}
		}
		return events
	})
}

// Timer streams the caller's own timer changes. The topic is derived from
// the authenticated user, so there is nothing further to authorize.
func (h *StreamHandler) Timer(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())

	topic := realtime.TimerTopic(claims.UserID)
	h.serve(w, r, topic, h.cfg.TimerHeartbeat, func(ctx context.Context) []realtime.Event {
		timers, err := h.store.ListRunningTimersByUser(ctx, claims.UserID)
		if err != nil {
			return nil
		}
		events := make([]realtime.Event, len(timers))
		for i, t := range timers {
			events[i] = timerToEvent(t)
		}
		return events
	})
}

// Activity streams the global activity feed.
func (h *StreamHandler) Activity(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, realtime.ActivityTopic, h.cfg.ActivityHeartbeat, func(ctx context.Context) []realtime.Event {
		rows, err := h.store.ListRecentActivity(ctx, int64(h.cfg.BacklogLimit))
		if err != nil {
			return nil
		}
		events := make([]realtime.Event, len(rows))
		for i, row := range rows {
			events[i] = realtime.ActivityMessage{
				ID:        row.ID,
				Kind:      row.Kind,
				UserID:    row.UserID,
				UserName:  row.UserName,
				Detail:    row.Detail,
				CreatedAt: row.CreatedAt,
			}
		}
		return events
	})
}

// serve runs one stream session: load backlog, attach a subscriber, replay
// the backlog oldest first, then forward live frames and heartbeats until
// the client disconnects. Backlog failures yield an empty backlog, never a
// failed stream.
func (h *StreamHandler) serve(w http.ResponseWriter, r *http.Request, topic string, heartbeat time.Duration, backlog func(ctx context.Context) []realtime.Event) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	ctx := r.Context()
	history := backlog(ctx)
	if ctx.Err() != nil {
		// Client went away while the backlog loaded; discard the result.
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	frames := make(chan []byte, streamFrameBuffer)
	sub := realtime.NewSubscriber(func(frame []byte) {
		select {
		case frames <- frame:
		default:
		}
	})

	h.registry.Subscribe(topic, sub)

	// Detach must run exactly once however the session ends; unsubscribe
	// itself is also idempotent.
	var detachOnce sync.Once
	detach := func() {
		detachOnce.Do(func() {
			h.registry.Unsubscribe(topic, sub)
			slog.Debug("stream detached", slog.String("topic", topic), slog.Int("subscribers", h.registry.Count(topic)))
		})
	}
	defer detach()

	// Replay backlog oldest first, each as one discrete frame, before any
	// live event is written.
	for _, event := range history {
		frame, err := realtime.Encode(event)
		if err != nil {
			continue
		}
		if _, err := w.Write(frame); err != nil {
			return
		}
	}
	flusher.Flush()

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-frames:
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := w.Write(realtime.HeartbeatFrame); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
