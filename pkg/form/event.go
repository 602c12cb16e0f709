package form

// EventType is the kind of browser event delivered to the engine.
type EventType string

const (
	EventInput  EventType = "input"
	EventBlur   EventType = "blur"
	EventChange EventType = "change"
)

// ParseEventType maps an event name to its type.
func ParseEventType(name string) (EventType, bool) {
	switch t := EventType(name); t {
	case EventInput, EventBlur, EventChange:
		return t, true
	}
	return "", false
}

// Event is a single browser event aimed at an element id.
type Event struct {
	Type   EventType
	Target string
}

type listenerKey struct {
	target string
	typ    EventType
}
