package domain

import "time"

// EventKind identifies the change an Event announces.
type EventKind string

const (
	EventSkillAdded        EventKind = "skill_added"
	EventSkillRemoved      EventKind = "skill_removed"
	EventSwapStatusChanged EventKind = "swap_status_changed"
)

// Event is the notification emitted after a successful mutation so that
// dependent views (cached skill lists, open request screens) can refresh.
// Delivery is best effort and at most once; an Event is not a durable log
// entry.
type Event struct {
	Kind    EventKind
	SkillID string     // set for skill events
	SwapID  string     // set for swap events
	Status  SwapStatus // set for EventSwapStatusChanged
	At      time.Time
}

// SkillRemoved builds the event published after a successful withdrawal.
func SkillRemoved(skillID string, at time.Time) Event {
	return Event{Kind: EventSkillRemoved, SkillID: skillID, At: at}
}

// SkillAdded builds the event published after a successful skill creation.
func SkillAdded(skillID string, at time.Time) Event {
	return Event{Kind: EventSkillAdded, SkillID: skillID, At: at}
}

// SwapStatusChanged builds the event published after a request is decided.
func SwapStatusChanged(swapID string, status SwapStatus, at time.Time) Event {
	return Event{Kind: EventSwapStatusChanged, SwapID: swapID, Status: status, At: at}
}
