package core

// EventKind identifies something a game step did that the platform may
// need to act on (persisting, recording scores, logging).
type EventKind int

const (
	EventNone EventKind = iota
	EventPlaced
	EventLinesCleared
	EventGameOver
	EventReset
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventPlaced:
		return "placed"
	case EventLinesCleared:
		return "lines_cleared"
	case EventGameOver:
		return "game_over"
	case EventReset:
		return "reset"
	default:
		return "none"
	}
}

// Event is emitted from Step. Value carries kind-specific data: points
// awarded for EventPlaced, lines for EventLinesCleared, the final score
// for EventGameOver.
type Event struct {
	Kind  EventKind
	Value int
}

// Has reports whether events contains an event of the given kind.
func Has(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
