package ecs

// EventType names gameplay notifications systems pass to each other within
// one tick.
type EventType string

const (
	EventConversationStarted EventType = "conversation_started"
	EventConversationEnded   EventType = "conversation_ended"
	EventConversationsDone   EventType = "conversations_completed"
	EventDoorLocked          EventType = "door_locked"
	EventDoorOpened          EventType = "door_opened"
	EventMissionActivated    EventType = "mission_activated"
	EventActionPlayed        EventType = "action_played"
	EventPrefabReloaded      EventType = "prefab_reloaded"
)

type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events of one type without consuming them.
func (q *EventQueue) Peek(t EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
