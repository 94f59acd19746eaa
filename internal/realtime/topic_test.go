package realtime

import (
	"testing"

	"github.com/google/uuid"
)

func TestChatTopicDeterministic(t *testing.T) {
	a := ChatTopic("org-1", "general")
	b := ChatTopic("org-1", "general")
	if a != b {
		t.Errorf("same inputs produced different keys: %q vs %q", a, b)
	}
}

func TestChatTopicTenantIsolation(t *testing.T) {
	// The same channel name in two different organizations must produce
	// distinct keys.
	a := ChatTopic("org-1", "all")
	b := ChatTopic("org-2", "all")
	if a == b {
		t.Errorf("keys collide across organizations: %q", a)
	}

	c := ChatTopic("org-1", "all")
	d := ChatTopic("org-1", "random")
	if c == d {
		t.Errorf("keys collide across channels: %q", c)
	}
}

func TestTimerTopicPerUser(t *testing.T) {
	if TimerTopic("u1") == TimerTopic("u2") {
		t.Error("timer keys collide across users")
	}
	if TimerTopic("u1") != TimerTopic("u1") {
		t.Error("timer key not deterministic")
	}
}

func TestNamespacesDoNotCollide(t *testing.T) {
	keys := []string{
		ChatTopic("x", "y"),
		TimerTopic("x"),
		ActivityTopic,
	}
	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key across namespaces: %q", k)
		}
		seen[k] = true
	}
}

func TestTopicKeysDistinctForRandomIDs(t *testing.T) {
	seen := make(map[string][2]string)

	for i := 0; i < 500; i++ {
		org := uuid.NewString()
		channel := uuid.NewString()
		// Occasionally reuse a channel ID under a different org.
		if i%5 == 0 {
			channel = "shared-channel"
		}

		key := ChatTopic(org, channel)
		if prev, ok := seen[key]; ok {
			t.Fatalf("key %q collides: (%s,%s) vs (%s,%s)", key, prev[0], prev[1], org, channel)
		}
		seen[key] = [2]string{org, channel}
	}
}
