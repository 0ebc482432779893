package dto

import "loan-agent-be/pkg/store"

type SendMessageRequest struct {
	Message string `json:"message"`
}

// TurnResponse reports what one turn produced and what the assistant is
// now waiting for ("input", "file", or empty).
type TurnResponse struct {
	SessionID string          `json:"session_id"`
	Messages  []store.Message `json:"messages"`
	Awaiting  string          `json:"awaiting,omitempty"`
	Ended     bool            `json:"ended"`
	Halted    bool            `json:"halted"`
}

type HistoryResponse struct {
	SessionID string          `json:"session_id"`
	Messages  []store.Message `json:"messages"`
}
