// Package step holds the seven dialogue steps of the loan assistant.
// Each step is a resumable procedure keyed by the phase stored in its
// session work state; steps talk to the orchestrator only through
// emitted dialog events.
package step

import (
	"context"
	"strings"

	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/dialog"
)

const (
	phaseAwaitingEmail = "awaiting_email"
)

// GreetStep welcomes the user, captures an email, and routes to the
// staff portal, ID verification, or registration.
type GreetStep struct {
	uowFactory  unitofwork.RepositoryFactory
	staffEmails map[string]bool
}

var _ dialog.Step = &GreetStep{}

func NewGreetStep(uowFactory unitofwork.RepositoryFactory, staffEmails []string) *GreetStep {
	allowed := make(map[string]bool, len(staffEmails))
	for _, email := range staffEmails {
		allowed[strings.ToLower(strings.TrimSpace(email))] = true
	}
	return &GreetStep{
		uowFactory:  uowFactory,
		staffEmails: allowed,
	}
}

func (s *GreetStep) Name() dialog.StepName {
	return dialog.StepGreetClassify
}

func (s *GreetStep) Execute(ctx context.Context, sc *dialog.Context, payload any) error {
	switch sc.Phase() {
	case dialog.PhaseStart:
		sc.Emit(dialog.Message("👋 Hello! Welcome to the Loan Agent. To begin, please enter your email address."))
		sc.SetPhase(phaseAwaitingEmail)
		sc.Emit(dialog.RequestInput())
		return nil

	case phaseAwaitingEmail:
		email, _ := payload.(string)
		email = strings.TrimSpace(email)
		if email == "" || !strings.Contains(email, "@") {
			sc.Emit(dialog.Message("❌ Invalid email format. Please try again."))
			sc.Emit(dialog.Transition(dialog.StepGreetClassify, nil))
			return nil
		}

		if s.staffEmails[strings.ToLower(email)] {
			sc.Emit(dialog.Message("🏦 Welcome, Loan Officer."))
			sc.Emit(dialog.Transition(dialog.StepPortal, nil))
			return nil
		}

		sc.Emit(dialog.Message("👤 Thank you. Checking our records..."))
		uow := s.uowFactory.NewUnitOfWork(ctx)
		customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByEmailFold{Email: email})
		if err != nil {
			return err
		}

		if customer != nil {
			sc.Emit(dialog.Message("✅ Welcome back, " + customer.FullName + "!"))
			sc.Emit(dialog.Transition(dialog.StepIDVerify, dialog.VerifyPayload{
				CustomerID: customer.Id,
				IsNew:      false,
			}))
			return nil
		}

		sc.Emit(dialog.Message("🆕 It looks like you're a new user."))
		sc.Emit(dialog.Transition(dialog.StepRegistration, dialog.RegisterPayload{Email: email}))
		return nil
	}
	return nil
}
