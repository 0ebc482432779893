package dialog

// PhaseStart is the implicit resumption point of a step that has not
// suspended yet (work state carries no phase).
const PhaseStart = "start"

const phaseKey = "phase"

// Context exposes a step's private work state and the append-only event
// channel back to the orchestrator. The work state survives re-invocations
// of the same step and is discarded on every transition; no step may read
// another step's work state except via an explicit transition payload.
type Context struct {
	state  map[string]any
	events []Event
}

func NewContext(state map[string]any) *Context {
	if state == nil {
		state = make(map[string]any)
	}
	return &Context{state: state}
}

// Emit appends an event for the orchestrator to interpret in order.
func (c *Context) Emit(ev Event) {
	c.events = append(c.events, ev)
}

// Events returns the events emitted so far, in emission order.
func (c *Context) Events() []Event {
	return c.events
}

// Terminal reports whether a suspending event has been emitted.
func (c *Context) Terminal() bool {
	for _, ev := range c.events {
		if ev.IsTerminal() {
			return true
		}
	}
	return false
}

// Phase returns the stored resumption point, or PhaseStart on first entry.
func (c *Context) Phase() string {
	if p, ok := c.state[phaseKey].(string); ok && p != "" {
		return p
	}
	return PhaseStart
}

func (c *Context) SetPhase(phase string) {
	c.state[phaseKey] = phase
}

// Set stores a step-private value in the work state.
func (c *Context) Set(key string, value any) {
	c.state[key] = value
}

// Get reads a step-private value from the work state.
func (c *Context) Get(key string) (any, bool) {
	v, ok := c.state[key]
	return v, ok
}

func (c *Context) GetString(key string) string {
	v, _ := c.state[key].(string)
	return v
}

func (c *Context) GetInt64(key string) int64 {
	switch v := c.state[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func (c *Context) GetFloat64(key string) float64 {
	switch v := c.state[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func (c *Context) GetBool(key string) bool {
	v, _ := c.state[key].(bool)
	return v
}
