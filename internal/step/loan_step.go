package step

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"loan-agent-be/internal/constant"
	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/dialog"
	"loan-agent-be/pkg/events"
	"loan-agent-be/pkg/llm"
	"loan-agent-be/pkg/loan"
	"loan-agent-be/pkg/retrieval"

	"go.uber.org/zap"
)

const (
	phaseAwaitingConfirmation = "awaiting_confirmation"
	phaseAwaitingIncome       = "awaiting_income"
)

// eligibilityTopK bounds the passages fed to the value extractor; the
// thresholds live in one or two guide sections, so a narrow window
// keeps the extraction focused.
const eligibilityTopK = 3

type loanRequestDetails struct {
	LoanAmount  float64 `json:"loan_amount"`
	LoanPurpose string  `json:"loan_purpose"`
	TenureYears int     `json:"tenure_years"`
}

// LoanStep drives the application flow: parse the free-text request,
// quote an EMI, then run the three-stage eligibility gate (max amount,
// min income, min credit score) against thresholds extracted from the
// guide on demand.
type LoanStep struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	retriever   retrieval.Retriever
	publisher   events.Publisher
	logger      *zap.Logger
	defaultRate float64
}

var _ dialog.Step = &LoanStep{}

func NewLoanStep(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	retriever retrieval.Retriever,
	publisher events.Publisher,
	logger *zap.Logger,
	defaultRate float64,
) *LoanStep {
	return &LoanStep{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		retriever:   retriever,
		publisher:   publisher,
		logger:      logger,
		defaultRate: defaultRate,
	}
}

func (s *LoanStep) Name() dialog.StepName {
	return dialog.StepLoan
}

func (s *LoanStep) Execute(ctx context.Context, sc *dialog.Context, payload any) error {
	switch sc.Phase() {
	case dialog.PhaseStart:
		p, _ := payload.(dialog.ApplyPayload)
		return s.parseRequest(ctx, sc, p)
	case phaseAwaitingConfirmation:
		answer, _ := payload.(string)
		return s.confirm(ctx, sc, answer)
	case phaseAwaitingIncome:
		answer, _ := payload.(string)
		return s.checkIncomeAndScore(ctx, sc, answer)
	}
	return nil
}

func (s *LoanStep) parseRequest(ctx context.Context, sc *dialog.Context, p dialog.ApplyPayload) error {
	sc.Set("customer_id", p.CustomerID)
	sc.Emit(dialog.Message("Let's start your loan application. Analyzing your request..."))

	reply, err := s.llmProvider.Generate(ctx, fmt.Sprintf(constant.LoanRequestParserPrompt, p.Request))
	if err != nil {
		return err
	}

	var details loanRequestDetails
	parseErr := json.Unmarshal([]byte(stripCodeFences(reply)), &details)
	amount := int64(details.LoanAmount)
	purpose := strings.TrimSpace(details.LoanPurpose)
	if parseErr != nil || amount <= 0 || purpose == "" || purpose == "Unknown" {
		sc.Emit(dialog.Message("Sorry, I couldn't understand the loan details. Please try again."))
		sc.Emit(dialog.Transition(dialog.StepMainMenu, dialog.MenuPayload{CustomerID: p.CustomerID}))
		return nil
	}
	tenure := details.TenureYears
	if tenure <= 0 {
		tenure = 5
	}

	passages, err := s.retriever.Query(ctx, "interest rate for "+purpose, eligibilityTopK)
	if err != nil {
		return err
	}
	rate := loan.InterestRateFrom(passages, s.defaultRate)
	emi := loan.EMI(amount, rate, tenure)

	sc.Set("loan_amount", amount)
	sc.Set("loan_purpose", purpose)
	sc.Set("tenure_years", int64(tenure))
	sc.Set("annual_rate", rate)
	sc.Set("emi", emi)

	sc.Emit(dialog.Message(fmt.Sprintf(
		"Based on a loan of **₹%s** for a '%s' over **%d years** at %g%% p.a., your estimated monthly EMI would be **₹%s**. \n\nDo you want to proceed with the eligibility check? (yes/no)",
		groupDigits(amount), purpose, tenure, rate, groupDigits(emi),
	)))
	sc.SetPhase(phaseAwaitingConfirmation)
	sc.Emit(dialog.RequestInput())
	return nil
}

func (s *LoanStep) confirm(ctx context.Context, sc *dialog.Context, answer string) error {
	customerID := sc.GetInt64("customer_id")
	if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
		sc.Emit(dialog.Message("Okay, the loan application has been cancelled."))
		sc.Emit(dialog.Transition(dialog.StepMainMenu, dialog.MenuPayload{CustomerID: customerID}))
		return nil
	}

	amount := sc.GetInt64("loan_amount")
	purpose := sc.GetString("loan_purpose")

	maxAmount, err := s.eligibilityValue(ctx, purpose, "Maximum Loan Amount")
	if err != nil {
		return err
	}
	if maxAmount > 0 && amount > maxAmount {
		sc.Emit(dialog.Message(fmt.Sprintf(
			"❌ Application Failed: The requested amount of ₹%s exceeds the maximum of ₹%s for a %s.",
			groupDigits(amount), groupDigits(maxAmount), purpose,
		)))
		sc.Emit(dialog.Transition(dialog.StepMainMenu, dialog.MenuPayload{CustomerID: customerID}))
		return nil
	}
	sc.Emit(dialog.Message("✅ Loan amount is within limits."))

	sc.Emit(dialog.Message("Next, please enter your monthly income (e.g., 50000)."))
	sc.SetPhase(phaseAwaitingIncome)
	sc.Emit(dialog.RequestInput())
	return nil
}

func (s *LoanStep) checkIncomeAndScore(ctx context.Context, sc *dialog.Context, answer string) error {
	customerID := sc.GetInt64("customer_id")
	amount := sc.GetInt64("loan_amount")
	purpose := sc.GetString("loan_purpose")
	tenure := int(sc.GetInt64("tenure_years"))

	failed := func(reason string) {
		sc.Emit(dialog.Message("❌ Application Failed: " + reason))
		sc.Emit(dialog.Transition(dialog.StepMainMenu, dialog.MenuPayload{CustomerID: customerID}))
	}

	// Non-numeric income fails the application rather than re-prompting.
	income, err := strconv.ParseInt(strings.TrimSpace(answer), 10, 64)
	if err != nil {
		failed("please enter your income as a plain number.")
		return nil
	}

	minIncome, err := s.eligibilityValue(ctx, purpose, "Minimum Income")
	if err != nil {
		return err
	}
	if minIncome > 0 && income < minIncome {
		failed(fmt.Sprintf(
			"Your monthly income of ₹%s is below the required minimum of ₹%s for a %s.",
			groupDigits(income), groupDigits(minIncome), purpose,
		))
		return nil
	}
	sc.Emit(dialog.Message("✅ Income level is sufficient."))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: customerID})
	if err != nil {
		return err
	}
	if customer == nil {
		failed("we could not find your customer record.")
		return nil
	}

	minScore, err := s.eligibilityValue(ctx, purpose, "Minimum Credit Score")
	if err != nil {
		return err
	}
	if minScore > 0 && int64(customer.CreditScore) < minScore {
		failed(fmt.Sprintf(
			"Your credit score of %d is below the required minimum of %d for a %s.",
			customer.CreditScore, minScore, purpose,
		))
		return nil
	}
	sc.Emit(dialog.Message("✅ Credit score is satisfactory."))

	application := &entity.LoanApplication{
		CustomerId:      customerID,
		Amount:          amount,
		Purpose:         purpose,
		ApplicationDate: time.Now(),
		Status:          entity.LoanStatusPending,
	}
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()
	if err := uow.LoanApplicationRepository().Create(ctx, application); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := s.publisher.PublishApplicationSubmitted(ctx, events.ApplicationSubmitted{
		ApplicationId: application.Id,
		CustomerId:    customerID,
		Amount:        amount,
		Purpose:       purpose,
		TenureYears:   tenure,
		OccurredAt:    time.Now(),
	}); err != nil {
		s.logger.Warn("failed to publish application submitted event",
			zap.Int64("application_id", application.Id),
			zap.Error(err),
		)
	}

	sc.Emit(dialog.Message("🎉 **Success!** All initial eligibility checks have passed. Your loan application has been submitted for final review."))
	sc.Emit(dialog.Transition(dialog.StepMainMenu, dialog.MenuPayload{CustomerID: customerID}))
	return nil
}

// eligibilityValue retrieves guide passages about the purpose and asks
// the model to extract the named threshold. Zero means the guide does
// not state one and the check is unenforced.
func (s *LoanStep) eligibilityValue(ctx context.Context, purpose, valueName string) (int64, error) {
	passages, err := s.retriever.Query(ctx, valueName+" for "+purpose, eligibilityTopK)
	if err != nil {
		return 0, err
	}
	reply, err := s.llmProvider.Generate(ctx, fmt.Sprintf(
		constant.EligibilityExtractorPrompt,
		valueName,
		retrieval.JoinPassages(passages),
	))
	if err != nil {
		return 0, err
	}
	return loan.EligibilityValue(strings.TrimSpace(reply)), nil
}

// stripCodeFences removes markdown code fences the model sometimes
// wraps JSON replies in.
func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// groupDigits renders a positive amount with thousands separators.
func groupDigits(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
