package realtime

import (
	"strings"
	"testing"
)

func TestEventNames(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{ChatMessage{}, "message"},
		{ChatDeleted{}, "deleted"},
		{ChatLiked{}, "liked"},
		{TimerChanged{}, "changed"},
		{TimerFinalized{}, "finalize"},
		{ActivityMessage{}, "message"},
	}

	for _, tt := range tests {
		if got := tt.event.EventName(); got != tt.want {
			t.Errorf("EventName() = %q, want %q", got, tt.want)
		}
	}
}

func TestEncodeFraming(t *testing.T) {
	frame, err := Encode(ChatDeleted{ID: 7, ChannelID: "c1"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	got := string(frame)
	want := "event: deleted\ndata: {\"id\":7,\"channelId\":\"c1\"}\n\n"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeOmitsEmptyOptionalFields(t *testing.T) {
	frame, err := Encode(TimerFinalized{ID: "t1", DurationMS: 1500})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(string(frame), `"durationMs":1500`) {
		t.Errorf("frame missing duration: %q", frame)
	}

	changed, err := Encode(TimerChanged{ID: "t1", Running: true})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Contains(string(changed), "taskId") {
		t.Errorf("nil task ID should be omitted: %q", changed)
	}
	if strings.Contains(string(changed), "stoppedAt") {
		t.Errorf("nil stop time should be omitted: %q", changed)
	}
}

func TestHeartbeatFrameIsComment(t *testing.T) {
	if string(HeartbeatFrame) != ":\n\n" {
		t.Errorf("HeartbeatFrame = %q, want %q", HeartbeatFrame, ":\n\n")
	}
}
