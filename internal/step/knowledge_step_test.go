package step

import (
	"testing"

	"loan-agent-be/internal/constant"
	"loan-agent-be/pkg/dialog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeStep_AnswersAndReturnsToMenu(t *testing.T) {
	llmProvider := &fakeLLM{replies: map[string]string{
		"Rewrite the user's question": "annual interest rate home loan",
		"Answer the customer's question": "The interest rate for a home loan is 8.5% per annum.",
	}}
	retriever := &fakeRetriever{passages: map[string][]string{
		"annual interest rate home loan": {"Home loans are offered at 8.5% per annum."},
	}}
	s := NewKnowledgeStep(llmProvider, retriever, 5)

	evs := execute(t, s, map[string]any{}, dialog.QueryPayload{
		CustomerID: 7,
		Query:      "what's the rate for a home loan?",
	})

	texts := messageTexts(evs)
	require.Len(t, texts, 3)
	assert.Contains(t, texts[0], "Searching our loan guide")
	assert.Equal(t, "The interest rate for a home loan is 8.5% per annum.", texts[1])

	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepMainMenu, last.Next)
	payload, ok := last.Payload.(dialog.MenuPayload)
	require.True(t, ok)
	assert.Equal(t, int64(7), payload.CustomerID)
}

func TestKnowledgeStep_FallbackAnswerPassesThrough(t *testing.T) {
	llmProvider := &fakeLLM{replies: map[string]string{
		"Rewrite the user's question": "gold loan rates",
		"Answer the customer's question": constant.KnowledgeFallbackAnswer,
	}}
	s := NewKnowledgeStep(llmProvider, &fakeRetriever{}, 5)

	evs := execute(t, s, map[string]any{}, dialog.QueryPayload{
		CustomerID: 7,
		Query:      "do you offer gold loans?",
	})

	texts := messageTexts(evs)
	require.Len(t, texts, 3)
	assert.Equal(t, constant.KnowledgeFallbackAnswer, texts[1])
}
