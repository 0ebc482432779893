package store

import (
	"time"

	"loan-agent-be/pkg/dialog"
)

// Message is one displayed entry of a session transcript: either plain
// text or a tabular payload.
type Message struct {
	Role      string           `json:"role"` // "user" | "assistant"
	Content   string           `json:"content,omitempty"`
	Table     []map[string]any `json:"table,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session is the per-user conversation state held in memory. The work
// state belongs exclusively to the current step and is cleared on every
// transition.
type Session struct {
	ID          string          `json:"id"`
	CurrentStep dialog.StepName `json:"current_step"`
	WorkState   map[string]any  `json:"work_state"`
	Transcript  []Message       `json:"transcript"`

	AwaitingInput bool `json:"awaiting_input"`
	AwaitingFile  bool `json:"awaiting_file"`

	// Halted is set when a collaborator fault was surfaced; the session
	// accepts no further input.
	Halted bool `json:"halted"`

	CreatedAt time.Time `json:"created_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:          id,
		CurrentStep: dialog.StepGreetClassify,
		WorkState:   make(map[string]any),
		CreatedAt:   time.Now(),
	}
}

// ResetFlow returns the session to the greeting step with a fresh work
// state, keeping the transcript visible.
func (s *Session) ResetFlow() {
	s.CurrentStep = dialog.StepGreetClassify
	s.WorkState = make(map[string]any)
	s.AwaitingInput = false
	s.AwaitingFile = false
}

func (s *Session) AppendText(role, content string) {
	s.Transcript = append(s.Transcript, Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

func (s *Session) AppendTable(rows []map[string]any) {
	s.Transcript = append(s.Transcript, Message{
		Role:      RoleAssistant,
		Table:     rows,
		CreatedAt: time.Now(),
	})
}
