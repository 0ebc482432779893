package step

import (
	"context"
	"fmt"
	"strings"

	"loan-agent-be/internal/constant"
	"loan-agent-be/pkg/dialog"
	"loan-agent-be/pkg/llm"
)

const phaseAwaitingInput = "awaiting_input"

const menuText = "How can I help you today?\n\n" +
	"1. Ask a question (e.g., 'What is the interest rate for a home loan?')\n" +
	"2. Apply for a loan (e.g., 'I want to apply for a home loan of 500000')\n" +
	"You can also type 'exit' to end the session."

var exitPhrases = map[string]bool{
	"exit":    true,
	"quit":    true,
	"goodbye": true,
	"bye":     true,
}

// MenuStep shows the main menu and routes free text to the knowledge or
// loan flow based on LLM intent classification.
type MenuStep struct {
	llmProvider llm.LLMProvider
}

var _ dialog.Step = &MenuStep{}

func NewMenuStep(llmProvider llm.LLMProvider) *MenuStep {
	return &MenuStep{llmProvider: llmProvider}
}

func (s *MenuStep) Name() dialog.StepName {
	return dialog.StepMainMenu
}

func (s *MenuStep) Execute(ctx context.Context, sc *dialog.Context, payload any) error {
	switch sc.Phase() {
	case dialog.PhaseStart:
		p, _ := payload.(dialog.MenuPayload)
		sc.Set("customer_id", p.CustomerID)
		sc.Emit(dialog.Message(menuText))
		sc.SetPhase(phaseAwaitingInput)
		sc.Emit(dialog.RequestInput())
		return nil

	case phaseAwaitingInput:
		customerID := sc.GetInt64("customer_id")
		input, _ := payload.(string)

		if strings.TrimSpace(input) == "" {
			sc.Emit(dialog.Message("I didn't get that. Please tell me how I can help."))
			sc.Emit(dialog.RequestInput())
			return nil
		}

		if exitPhrases[strings.ToLower(strings.TrimSpace(input))] {
			sc.Emit(dialog.Message("Thank you for using the Loan Agent. Goodbye! 👋"))
			sc.Emit(dialog.EndSession())
			return nil
		}

		reply, err := s.llmProvider.Generate(ctx, fmt.Sprintf(constant.IntentClassifierPrompt, input))
		if err != nil {
			return err
		}

		switch strings.ToLower(strings.TrimSpace(reply)) {
		case "ask_question":
			sc.Emit(dialog.Transition(dialog.StepKnowledge, dialog.QueryPayload{
				CustomerID: customerID,
				Query:      input,
			}))
		case "apply_loan":
			sc.Emit(dialog.Transition(dialog.StepLoan, dialog.ApplyPayload{
				CustomerID: customerID,
				Request:    input,
			}))
		default:
			sc.Emit(dialog.Message("I'm not sure how to help with that. Please try rephrasing your request."))
			sc.Emit(dialog.Transition(dialog.StepMainMenu, dialog.MenuPayload{CustomerID: customerID}))
		}
		return nil
	}
	return nil
}
