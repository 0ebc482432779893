package step

import (
	"context"
	"testing"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/dialog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLoanStep(factory unitofwork.RepositoryFactory, llmProvider *fakeLLM, retriever *fakeRetriever, publisher *fakePublisher) *LoanStep {
	return NewLoanStep(factory, llmProvider, retriever, publisher, zap.NewNop(), 8.5)
}

func homeLoanLLM() *fakeLLM {
	return &fakeLLM{replies: map[string]string{
		"Extract the loan request details":          `{"loan_amount": 500000, "loan_purpose": "Home Loan", "tenure_years": 5}`,
		"extract the value for: Maximum Loan Amount": "50 Lakh",
		"extract the value for: Minimum Income":      "25000",
		"extract the value for: Minimum Credit Score": "700",
	}}
}

func homeLoanRetriever() *fakeRetriever {
	return &fakeRetriever{passages: map[string][]string{
		"interest rate for Home Loan": {"Home loans are offered at 8.5% per annum."},
		"for Home Loan":               {"Maximum loan amount is 50 Lakh. Minimum income 25000. Minimum credit score 700."},
	}}
}

func TestLoanStep_QuotesEMIAndAsksForConfirmation(t *testing.T) {
	s := newLoanStep(newTestFactory(), homeLoanLLM(), homeLoanRetriever(), &fakePublisher{})
	state := map[string]any{}

	evs := execute(t, s, state, dialog.ApplyPayload{
		CustomerID: 7,
		Request:    "I want a home loan of 500000",
	})

	texts := messageTexts(evs)
	require.Len(t, texts, 2)
	assert.Contains(t, texts[1], "₹10,258")
	assert.Contains(t, texts[1], "8.5% p.a.")
	assert.Equal(t, dialog.EventRequestInput, lastEvent(t, evs).Kind)
	assert.Equal(t, phaseAwaitingConfirmation, dialog.NewContext(state).Phase())
}

func TestLoanStep_UnparsableRequestReturnsToMenu(t *testing.T) {
	llmProvider := &fakeLLM{replies: map[string]string{
		"Extract the loan request details": "I cannot help with that",
	}}
	s := newLoanStep(newTestFactory(), llmProvider, homeLoanRetriever(), &fakePublisher{})

	evs := execute(t, s, map[string]any{}, dialog.ApplyPayload{CustomerID: 7, Request: "loan please"})

	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepMainMenu, last.Next)
}

func TestLoanStep_DeclinedConfirmationCancels(t *testing.T) {
	s := newLoanStep(newTestFactory(), homeLoanLLM(), homeLoanRetriever(), &fakePublisher{})
	state := loanState(7, 500000)

	evs := execute(t, s, state, "no")

	texts := messageTexts(evs)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "cancelled")
	assert.Equal(t, dialog.StepMainMenu, lastEvent(t, evs).Next)
}

func TestLoanStep_AmountAboveMaximumFails(t *testing.T) {
	s := newLoanStep(newTestFactory(), homeLoanLLM(), homeLoanRetriever(), &fakePublisher{})
	state := loanState(7, 9000000) // above the 50 Lakh cap

	evs := execute(t, s, state, "yes")

	texts := messageTexts(evs)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Application Failed")
	assert.Contains(t, texts[0], "exceeds the maximum")
	assert.Equal(t, dialog.StepMainMenu, lastEvent(t, evs).Next)
}

func TestLoanStep_ConfirmedAsksForIncome(t *testing.T) {
	s := newLoanStep(newTestFactory(), homeLoanLLM(), homeLoanRetriever(), &fakePublisher{})
	state := loanState(7, 500000)

	evs := execute(t, s, state, "yes")

	texts := messageTexts(evs)
	require.Len(t, texts, 2)
	assert.Equal(t, "✅ Loan amount is within limits.", texts[0])
	assert.Contains(t, texts[1], "monthly income")
	assert.Equal(t, dialog.EventRequestInput, lastEvent(t, evs).Kind)
	assert.Equal(t, phaseAwaitingIncome, dialog.NewContext(state).Phase())
}

func TestLoanStep_NonNumericIncomeFailsApplication(t *testing.T) {
	s := newLoanStep(newTestFactory(), homeLoanLLM(), homeLoanRetriever(), &fakePublisher{})
	state := loanState(7, 500000)
	state["phase"] = phaseAwaitingIncome

	evs := execute(t, s, state, "about eighty thousand")

	texts := messageTexts(evs)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Application Failed")
	assert.Equal(t, dialog.StepMainMenu, lastEvent(t, evs).Next)
}

func TestLoanStep_IncomeBelowMinimumFails(t *testing.T) {
	factory := newTestFactory()
	customer := seedCustomer(t, factory, entity.Customer{
		FullName:    "Bob Builder",
		Email:       "bob@example.com",
		CreditScore: 750,
	})
	s := newLoanStep(factory, homeLoanLLM(), homeLoanRetriever(), &fakePublisher{})
	state := loanState(customer.Id, 500000)
	state["phase"] = phaseAwaitingIncome

	evs := execute(t, s, state, "20000")

	texts := messageTexts(evs)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "below the required minimum")
	assert.Equal(t, dialog.StepMainMenu, lastEvent(t, evs).Next)
}

func TestLoanStep_LowCreditScoreFailsAfterIncomeSuccess(t *testing.T) {
	factory := newTestFactory()
	customer := seedCustomer(t, factory, entity.Customer{
		FullName:    "Bob Builder",
		Email:       "bob@example.com",
		CreditScore: 600,
	})
	s := newLoanStep(factory, homeLoanLLM(), homeLoanRetriever(), &fakePublisher{})
	state := loanState(customer.Id, 500000)
	state["phase"] = phaseAwaitingIncome

	evs := execute(t, s, state, "80000")

	// The income success message stays on the transcript even though the
	// credit check fails afterwards.
	texts := messageTexts(evs)
	require.Len(t, texts, 2)
	assert.Equal(t, "✅ Income level is sufficient.", texts[0])
	assert.Contains(t, texts[1], "credit score")
	assert.Contains(t, texts[1], "Application Failed")
	assert.Equal(t, dialog.StepMainMenu, lastEvent(t, evs).Next)
}

func TestLoanStep_AllChecksPassCreatePendingApplication(t *testing.T) {
	factory := newTestFactory()
	customer := seedCustomer(t, factory, entity.Customer{
		FullName:    "Bob Builder",
		Email:       "bob@example.com",
		CreditScore: 750,
	})
	publisher := &fakePublisher{}
	s := newLoanStep(factory, homeLoanLLM(), homeLoanRetriever(), publisher)
	state := loanState(customer.Id, 500000)
	state["phase"] = phaseAwaitingIncome

	evs := execute(t, s, state, "80000")

	texts := messageTexts(evs)
	require.Len(t, texts, 3)
	assert.Equal(t, "✅ Income level is sufficient.", texts[0])
	assert.Equal(t, "✅ Credit score is satisfactory.", texts[1])
	assert.Contains(t, texts[2], "Success!")
	assert.Equal(t, dialog.StepMainMenu, lastEvent(t, evs).Next)

	uow := factory.NewUnitOfWork(context.Background())
	apps, err := uow.LoanApplicationRepository().FindAll(context.Background(),
		specification.ByCustomerID{CustomerID: customer.Id})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, entity.LoanStatusPending, apps[0].Status)
	assert.Equal(t, int64(500000), apps[0].Amount)
	assert.Equal(t, "Home Loan", apps[0].Purpose)

	require.Len(t, publisher.submitted, 1)
	assert.Equal(t, apps[0].Id, publisher.submitted[0].ApplicationId)
	assert.Equal(t, 5, publisher.submitted[0].TenureYears)
}

// loanState is the work state after a successful parse phase.
func loanState(customerID, amount int64) map[string]any {
	return map[string]any{
		"phase":        phaseAwaitingConfirmation,
		"customer_id":  customerID,
		"loan_amount":  amount,
		"loan_purpose": "Home Loan",
		"tenure_years": int64(5),
		"annual_rate":  8.5,
		"emi":          int64(10258),
	}
}
