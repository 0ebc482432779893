package dialog

import (
	"context"
	"fmt"
)

// StepName identifies a step in the fixed registry
type StepName string

const (
	StepGreetClassify StepName = "greet_classify"
	StepRegistration  StepName = "new_customer_registration"
	StepIDVerify      StepName = "id_verification"
	StepMainMenu      StepName = "main_menu"
	StepKnowledge     StepName = "knowledge_query"
	StepLoan          StepName = "loan_application"
	StepPortal        StepName = "staff_portal"
)

// AllSteps returns the closed set of step identifiers
func AllSteps() []StepName {
	return []StepName{
		StepGreetClassify,
		StepRegistration,
		StepIDVerify,
		StepMainMenu,
		StepKnowledge,
		StepLoan,
		StepPortal,
	}
}

// Step is a resumable dialogue procedure. On first entry (phase "start") it
// consumes the transition payload, prompts, and suspends; on re-entry the
// payload is the user's answer to the last question asked.
type Step interface {
	Name() StepName
	Execute(ctx context.Context, sc *Context, payload any) error
}

// Typed transition payloads, keyed by destination step

// RegisterPayload seeds the registration step (destination: new_customer_registration)
type RegisterPayload struct {
	Email string
}

// VerifyPayload seeds ID verification (destination: id_verification)
type VerifyPayload struct {
	CustomerID int64
	IsNew      bool
}

// MenuPayload seeds the main menu (destination: main_menu)
type MenuPayload struct {
	CustomerID int64
}

// QueryPayload carries a knowledge question (destination: knowledge_query)
type QueryPayload struct {
	CustomerID int64
	Query      string
}

// ApplyPayload carries a free-text loan request (destination: loan_application)
type ApplyPayload struct {
	CustomerID int64
	Request    string
}

// Registry maps the closed step set to handlers. Construction fails unless
// every StepName is covered exactly once, so an unreachable step is caught
// at boot rather than mid-conversation.
type Registry struct {
	steps map[StepName]Step
}

func NewRegistry(steps ...Step) (*Registry, error) {
	m := make(map[StepName]Step, len(steps))
	for _, s := range steps {
		if _, dup := m[s.Name()]; dup {
			return nil, fmt.Errorf("dialog: duplicate step %q", s.Name())
		}
		m[s.Name()] = s
	}
	for _, name := range AllSteps() {
		if _, ok := m[name]; !ok {
			return nil, fmt.Errorf("dialog: missing step %q", name)
		}
	}
	if len(m) != len(AllSteps()) {
		return nil, fmt.Errorf("dialog: registry holds %d steps, want %d", len(m), len(AllSteps()))
	}
	return &Registry{steps: m}, nil
}

func (r *Registry) Get(name StepName) (Step, bool) {
	s, ok := r.steps[name]
	return s, ok
}
