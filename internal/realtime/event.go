package realtime

import (
	"encoding/json"
	"time"
)

// Event is a named, JSON-serializable payload broadcast to a topic.
// Each namespace has its own set of event types.
type Event interface {
	EventName() string
}

// ChatMessage is broadcast when a message is posted to a channel. ID is the
// server-assigned, monotonically increasing message identifier; together with
// CreatedAt it gives clients an advisory display order.
type ChatMessage struct {
	ID        int64     `json:"id"`
	ChannelID string    `json:"channelId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Body      string    `json:"body"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ChatMessage) EventName() string { return "message" }

// ChatDeleted is broadcast when a message is removed from a channel.
type ChatDeleted struct {
	ID        int64  `json:"id"`
	ChannelID string `json:"channelId"`
}

func (ChatDeleted) EventName() string { return "deleted" }

// ChatLiked is broadcast when a message's like count changes. The channel ID
// is taken from the message row already read on the like path.
type ChatLiked struct {
	ID        int64  `json:"id"`
	ChannelID string `json:"channelId"`
	UserID    string `json:"userId"`
	Likes     int64  `json:"likes"`
}

func (ChatLiked) EventName() string { return "liked" }

// TimerChanged is broadcast when a timer starts or stops.
type TimerChanged struct {
	ID          string     `json:"id"`
	TaskID      *string    `json:"taskId,omitempty"`
	Description string     `json:"description"`
	Running     bool       `json:"running"`
	StartedAt   time.Time  `json:"startedAt"`
	StoppedAt   *time.Time `json:"stoppedAt,omitempty"`
	DurationMS  int64      `json:"durationMs"`
}

func (TimerChanged) EventName() string { return "changed" }

// TimerFinalized is broadcast when a stopped timer is committed to a task's
// time log and leaves the active set.
type TimerFinalized struct {
	ID         string `json:"id"`
	DurationMS int64  `json:"durationMs"`
}

func (TimerFinalized) EventName() string { return "finalize" }

// ActivityMessage is broadcast on the global activity feed.
type ActivityMessage struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ActivityMessage) EventName() string { return "message" }

// HeartbeatFrame is the bare SSE comment written at a fixed interval so
// intermediary proxies do not time out an idle stream.
var HeartbeatFrame = []byte(":\n\n")

// Encode renders an event as a single SSE frame:
// "event: <name>\ndata: <json>\n\n".
func Encode(e Event) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, len(data)+len(e.EventName())+16)
	frame = append(frame, "event: "...)
	frame = append(frame, e.EventName()...)
	frame = append(frame, "\ndata: "...)
	frame = append(frame, data...)
	frame = append(frame, "\n\n"...)
	return frame, nil
}
