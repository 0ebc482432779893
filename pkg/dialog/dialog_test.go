package dialog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopStep struct {
	name StepName
}

func (s noopStep) Name() StepName { return s.name }

func (s noopStep) Execute(_ context.Context, _ *Context, _ any) error { return nil }

func allNoopSteps() []Step {
	var steps []Step
	for _, name := range AllSteps() {
		steps = append(steps, noopStep{name: name})
	}
	return steps
}

func TestNewRegistryRequiresFullCoverage(t *testing.T) {
	registry, err := NewRegistry(allNoopSteps()...)
	require.NoError(t, err)

	for _, name := range AllSteps() {
		_, ok := registry.Get(name)
		assert.True(t, ok, "step %q", name)
	}
}

func TestNewRegistryRejectsMissingStep(t *testing.T) {
	steps := allNoopSteps()
	_, err := NewRegistry(steps[:len(steps)-1]...)
	assert.Error(t, err)
}

func TestNewRegistryRejectsDuplicateStep(t *testing.T) {
	steps := append(allNoopSteps(), noopStep{name: StepMainMenu})
	_, err := NewRegistry(steps...)
	assert.Error(t, err)
}

func TestContextPhaseDefaultsToStart(t *testing.T) {
	sc := NewContext(nil)
	assert.Equal(t, PhaseStart, sc.Phase())

	sc.SetPhase("awaiting_email")
	assert.Equal(t, "awaiting_email", sc.Phase())
}

func TestContextStateSurvivesReentry(t *testing.T) {
	state := map[string]any{}

	sc := NewContext(state)
	sc.Set("customer_id", int64(7))
	sc.SetPhase("awaiting_input")

	// A re-invocation sees the same work state through a fresh context.
	again := NewContext(state)
	assert.Equal(t, int64(7), again.GetInt64("customer_id"))
	assert.Equal(t, "awaiting_input", again.Phase())
}

func TestContextGetInt64CoercesJSONNumbers(t *testing.T) {
	// Work state restored from a JSON round trip carries float64 values.
	sc := NewContext(map[string]any{"customer_id": float64(7)})
	assert.Equal(t, int64(7), sc.GetInt64("customer_id"))
}

func TestContextTerminal(t *testing.T) {
	sc := NewContext(nil)
	sc.Emit(Message("hello"))
	assert.False(t, sc.Terminal())

	sc.Emit(RequestInput())
	assert.True(t, sc.Terminal())
}

func TestEventIsTerminal(t *testing.T) {
	assert.False(t, Message("hi").IsTerminal())
	assert.False(t, Table(nil).IsTerminal())
	assert.True(t, RequestInput().IsTerminal())
	assert.True(t, RequestFile().IsTerminal())
	assert.True(t, Transition(StepMainMenu, MenuPayload{CustomerID: 1}).IsTerminal())
	assert.True(t, EndSession().IsTerminal())
}
