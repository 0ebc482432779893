package step

import (
	"context"
	"strconv"
	"strings"
	"time"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/dialog"
)

const (
	phaseAwaitingName  = "awaiting_name"
	phaseAwaitingPhone = "awaiting_phone"
	phaseAwaitingScore = "awaiting_score"
)

const (
	minCreditScore = 300
	maxCreditScore = 850
)

// RegisterStep collects name, phone, and credit score for a new
// customer, then hands off to ID verification.
type RegisterStep struct {
	uowFactory unitofwork.RepositoryFactory
}

var _ dialog.Step = &RegisterStep{}

func NewRegisterStep(uowFactory unitofwork.RepositoryFactory) *RegisterStep {
	return &RegisterStep{uowFactory: uowFactory}
}

func (s *RegisterStep) Name() dialog.StepName {
	return dialog.StepRegistration
}

func (s *RegisterStep) Execute(ctx context.Context, sc *dialog.Context, payload any) error {
	switch sc.Phase() {
	case dialog.PhaseStart:
		p, _ := payload.(dialog.RegisterPayload)
		sc.Set("email", p.Email)
		sc.Emit(dialog.Message("Let's get you registered. First, what is your full name?"))
		sc.SetPhase(phaseAwaitingName)
		sc.Emit(dialog.RequestInput())
		return nil

	case phaseAwaitingName:
		answer, _ := payload.(string)
		sc.Set("name", strings.TrimSpace(answer))
		sc.Emit(dialog.Message("Great. Now, what's your phone number?"))
		sc.SetPhase(phaseAwaitingPhone)
		sc.Emit(dialog.RequestInput())
		return nil

	case phaseAwaitingPhone:
		answer, _ := payload.(string)
		sc.Set("phone", strings.TrimSpace(answer))
		sc.Emit(dialog.Message("And finally, please provide your current credit score (e.g., 750)."))
		sc.SetPhase(phaseAwaitingScore)
		sc.Emit(dialog.RequestInput())
		return nil

	case phaseAwaitingScore:
		answer, _ := payload.(string)
		score, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil || score < minCreditScore || score > maxCreditScore {
			sc.Emit(dialog.Message("❌ That doesn't seem like a valid credit score. Please enter a number between 300 and 850."))
			sc.SetPhase(phaseAwaitingScore)
			sc.Emit(dialog.RequestInput())
			return nil
		}

		customer := &entity.Customer{
			FullName:    sc.GetString("name"),
			Email:       sc.GetString("email"),
			PhoneNumber: sc.GetString("phone"),
			CreditScore: score,
			CreatedAt:   time.Now(),
		}

		uow := s.uowFactory.NewUnitOfWork(ctx)
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback()
		if err := uow.CustomerRepository().Create(ctx, customer); err != nil {
			return err
		}
		if err := uow.Commit(); err != nil {
			return err
		}

		sc.Emit(dialog.Message("✅ Registration successful! Now let's verify your identity."))
		sc.Emit(dialog.Transition(dialog.StepIDVerify, dialog.VerifyPayload{
			CustomerID: customer.Id,
			IsNew:      true,
		}))
		return nil
	}
	return nil
}
