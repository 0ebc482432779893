package step

import (
	"context"
	"fmt"

	"loan-agent-be/internal/constant"
	"loan-agent-be/pkg/dialog"
	"loan-agent-be/pkg/llm"
	"loan-agent-be/pkg/retrieval"
)

// KnowledgeStep answers a single question from the loan guide: expand
// the query, retrieve passages, generate a grounded answer, and return
// to the main menu.
type KnowledgeStep struct {
	llmProvider llm.LLMProvider
	retriever   retrieval.Retriever
	topK        int
}

var _ dialog.Step = &KnowledgeStep{}

func NewKnowledgeStep(llmProvider llm.LLMProvider, retriever retrieval.Retriever, topK int) *KnowledgeStep {
	if topK <= 0 {
		topK = 5
	}
	return &KnowledgeStep{
		llmProvider: llmProvider,
		retriever:   retriever,
		topK:        topK,
	}
}

func (s *KnowledgeStep) Name() dialog.StepName {
	return dialog.StepKnowledge
}

func (s *KnowledgeStep) Execute(ctx context.Context, sc *dialog.Context, payload any) error {
	p, _ := payload.(dialog.QueryPayload)

	sc.Emit(dialog.Message(fmt.Sprintf("🔎 Searching our loan guide for information about: '%s'...", p.Query)))

	expanded, err := s.llmProvider.Generate(ctx, fmt.Sprintf(constant.QueryExpansionPrompt, p.Query))
	if err != nil {
		return err
	}

	passages, err := s.retriever.Query(ctx, expanded, s.topK)
	if err != nil {
		return err
	}

	// The answer prompt takes the original question so the model answers
	// what the user actually asked, not the rewritten search query.
	answer, err := s.llmProvider.Generate(ctx, fmt.Sprintf(
		constant.AnswerWithContextPrompt,
		retrieval.JoinPassages(passages),
		p.Query,
	))
	if err != nil {
		return err
	}

	sc.Emit(dialog.Message(answer))
	sc.Emit(dialog.Message("Is there anything else I can help you with?"))
	sc.Emit(dialog.Transition(dialog.StepMainMenu, dialog.MenuPayload{CustomerID: p.CustomerID}))
	return nil
}
