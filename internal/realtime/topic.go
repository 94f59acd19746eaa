package realtime

// Topic keys scope broadcasts. Chat keys combine organization and channel so
// the same channel name under two organizations never shares a key; timer
// keys are per user; the activity feed is a single process-wide topic.

// ChatTopic derives the broadcast key for a channel within an organization.
func ChatTopic(organizationID, channelID string) string {
	return "chat:" + organizationID + ":" + channelID
}

// TimerTopic derives the broadcast key for a user's timer stream. All timers
// owned by one user share this key regardless of timer ID.
func TimerTopic(userID string) string {
	return "timer:" + userID
}

// ActivityTopic is the single key for the global activity feed.
const ActivityTopic = "activity"
