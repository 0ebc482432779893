package step

import (
	"testing"

	"loan-agent-be/internal/entity"
	"loan-agent-be/pkg/dialog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreetStep_PromptsForEmail(t *testing.T) {
	s := NewGreetStep(newTestFactory(), nil)
	state := map[string]any{}

	evs := execute(t, s, state, nil)

	require.Len(t, evs, 2)
	assert.Equal(t, dialog.EventDisplayMessage, evs[0].Kind)
	assert.Equal(t, dialog.EventRequestInput, evs[1].Kind)
	assert.Equal(t, phaseAwaitingEmail, dialog.NewContext(state).Phase())
}

func TestGreetStep_InvalidEmailReprompts(t *testing.T) {
	s := NewGreetStep(newTestFactory(), nil)

	for _, input := range []string{"", "not-an-email", "   "} {
		state := map[string]any{"phase": phaseAwaitingEmail}
		evs := execute(t, s, state, input)

		last := lastEvent(t, evs)
		assert.Equal(t, dialog.EventTransition, last.Kind)
		assert.Equal(t, dialog.StepGreetClassify, last.Next)
	}
}

func TestGreetStep_StaffAllowListWinsOverRecords(t *testing.T) {
	factory := newTestFactory()
	// A staff email that also exists as a customer record still routes
	// to the portal.
	seedCustomer(t, factory, entity.Customer{
		FullName: "Admin User",
		Email:    "admin@bank.com",
	})
	s := NewGreetStep(factory, []string{"admin@bank.com", "manager@bank.com"})

	state := map[string]any{"phase": phaseAwaitingEmail}
	evs := execute(t, s, state, "ADMIN@Bank.com")

	last := lastEvent(t, evs)
	assert.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepPortal, last.Next)
}

func TestGreetStep_KnownCustomerGoesToVerification(t *testing.T) {
	factory := newTestFactory()
	customer := seedCustomer(t, factory, entity.Customer{
		FullName: "Alice Smith",
		Email:    "alice@example.com",
	})
	s := NewGreetStep(factory, nil)

	state := map[string]any{"phase": phaseAwaitingEmail}
	evs := execute(t, s, state, "Alice@Example.COM")

	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepIDVerify, last.Next)
	payload, ok := last.Payload.(dialog.VerifyPayload)
	require.True(t, ok)
	assert.Equal(t, customer.Id, payload.CustomerID)
	assert.False(t, payload.IsNew)
}

func TestGreetStep_UnknownEmailGoesToRegistration(t *testing.T) {
	s := NewGreetStep(newTestFactory(), nil)

	state := map[string]any{"phase": phaseAwaitingEmail}
	evs := execute(t, s, state, "new@example.com")

	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepRegistration, last.Next)
	payload, ok := last.Payload.(dialog.RegisterPayload)
	require.True(t, ok)
	assert.Equal(t, "new@example.com", payload.Email)
}
