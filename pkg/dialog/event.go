package dialog

// EventKind tags an event emitted by a step for the orchestrator
type EventKind string

const (
	EventDisplayMessage EventKind = "display_message"
	EventDisplayTable   EventKind = "display_table"
	EventRequestInput   EventKind = "request_input"
	EventRequestFile    EventKind = "request_file"
	EventTransition     EventKind = "transition"
	EventEndSession     EventKind = "end_session"
)

// Event is the unit of communication from a step to the orchestrator.
// Events are interpreted strictly in emission order: a display_message
// followed by a request_input means "show this, then wait".
type Event struct {
	Kind EventKind

	// Kind-specific payloads
	Text    string           // display_message
	Table   []map[string]any // display_table
	Next    StepName         // transition
	Payload any              // transition payload handed to the next step
}

// IsTerminal reports whether the event suspends the current invocation.
// A step must emit at most one terminal event per invocation.
func (e Event) IsTerminal() bool {
	switch e.Kind {
	case EventRequestInput, EventRequestFile, EventTransition, EventEndSession:
		return true
	}
	return false
}

func Message(text string) Event {
	return Event{Kind: EventDisplayMessage, Text: text}
}

func Table(rows []map[string]any) Event {
	return Event{Kind: EventDisplayTable, Table: rows}
}

func RequestInput() Event {
	return Event{Kind: EventRequestInput}
}

func RequestFile() Event {
	return Event{Kind: EventRequestFile}
}

func Transition(next StepName, payload any) Event {
	return Event{Kind: EventTransition, Next: next, Payload: payload}
}

func EndSession() Event {
	return Event{Kind: EventEndSession}
}
