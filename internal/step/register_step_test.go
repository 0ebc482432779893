package step

import (
	"context"
	"testing"

	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/pkg/dialog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterStep_FullFlow(t *testing.T) {
	factory := newTestFactory()
	s := NewRegisterStep(factory)
	state := map[string]any{}

	evs := execute(t, s, state, dialog.RegisterPayload{Email: "new@example.com"})
	assert.Equal(t, dialog.EventRequestInput, lastEvent(t, evs).Kind)

	evs = execute(t, s, state, "  Bob Builder  ")
	assert.Equal(t, dialog.EventRequestInput, lastEvent(t, evs).Kind)

	evs = execute(t, s, state, "9876543210")
	assert.Equal(t, dialog.EventRequestInput, lastEvent(t, evs).Kind)

	evs = execute(t, s, state, "750")
	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepIDVerify, last.Next)
	payload, ok := last.Payload.(dialog.VerifyPayload)
	require.True(t, ok)
	assert.True(t, payload.IsNew)

	uow := factory.NewUnitOfWork(context.Background())
	customer, err := uow.CustomerRepository().FindOne(context.Background(),
		specification.ByEmailFold{Email: "new@example.com"})
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "Bob Builder", customer.FullName)
	assert.Equal(t, 750, customer.CreditScore)
	assert.Equal(t, customer.Id, payload.CustomerID)
}

func TestRegisterStep_InvalidScoreStaysInPhase(t *testing.T) {
	s := NewRegisterStep(newTestFactory())

	tests := []struct {
		name  string
		input string
	}{
		{name: "non numeric", input: "high"},
		{name: "below range", input: "299"},
		{name: "above range", input: "851"},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := map[string]any{
				"phase": phaseAwaitingScore,
				"email": "new@example.com",
				"name":  "Bob Builder",
				"phone": "9876543210",
			}

			evs := execute(t, s, state, tt.input)

			assert.Equal(t, dialog.EventRequestInput, lastEvent(t, evs).Kind)
			assert.Equal(t, phaseAwaitingScore, dialog.NewContext(state).Phase())
		})
	}
}
