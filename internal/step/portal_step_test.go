package step

import (
	"context"
	"testing"
	"time"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/dialog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedPendingApplication(t *testing.T, factory unitofwork.RepositoryFactory, customerID int64) entity.LoanApplication {
	t.Helper()
	return seedApplication(t, factory, entity.LoanApplication{
		CustomerId:      customerID,
		Amount:          500000,
		Purpose:         "Home Loan",
		Status:          entity.LoanStatusPending,
		ApplicationDate: time.Now(),
	})
}

func TestPortalStep_EmptyQueueReturnsToGreeting(t *testing.T) {
	s := NewPortalStep(newTestFactory(), &fakePublisher{}, zap.NewNop())

	evs := execute(t, s, map[string]any{}, nil)

	texts := messageTexts(evs)
	require.Len(t, texts, 2)
	assert.Equal(t, "There are no pending loan applications.", texts[1])

	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepGreetClassify, last.Next)
}

func TestPortalStep_ListsPendingApplications(t *testing.T) {
	factory := newTestFactory()
	app := seedPendingApplication(t, factory, 7)
	s := NewPortalStep(factory, &fakePublisher{}, zap.NewNop())
	state := map[string]any{}

	evs := execute(t, s, state, nil)

	var table *dialog.Event
	for i := range evs {
		if evs[i].Kind == dialog.EventDisplayTable {
			table = &evs[i]
		}
	}
	require.NotNil(t, table)
	require.Len(t, table.Table, 1)
	assert.Equal(t, app.Id, table.Table[0]["loan_id"])
	assert.Equal(t, "Pending", table.Table[0]["status"])

	texts := messageTexts(evs)
	assert.Contains(t, texts[len(texts)-1], "approve <loan_id>")
	assert.Equal(t, dialog.EventRequestInput, lastEvent(t, evs).Kind)
	assert.Equal(t, phaseAwaitingCommand, dialog.NewContext(state).Phase())
}

func TestPortalStep_ApproveFlipsStatusAndPublishes(t *testing.T) {
	factory := newTestFactory()
	app := seedPendingApplication(t, factory, 7)
	publisher := &fakePublisher{}
	s := NewPortalStep(factory, publisher, zap.NewNop())

	state := map[string]any{"phase": phaseAwaitingCommand}
	evs := execute(t, s, state, "approve 1")

	texts := messageTexts(evs)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "has been approved")

	// The step redisplays itself so the officer sees the updated queue.
	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepPortal, last.Next)

	uow := factory.NewUnitOfWork(context.Background())
	apps, err := uow.LoanApplicationRepository().FindAll(context.Background(),
		specification.ByID{ID: app.Id})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, entity.LoanStatusApproved, apps[0].Status)

	require.Len(t, publisher.decided, 1)
	assert.Equal(t, app.Id, publisher.decided[0].ApplicationId)
	assert.Equal(t, int64(7), publisher.decided[0].CustomerId)
	assert.Equal(t, "Approved", publisher.decided[0].Status)
}

func TestPortalStep_RejectOnlyTouchesPending(t *testing.T) {
	factory := newTestFactory()
	app := seedPendingApplication(t, factory, 7)

	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.Begin(context.Background()))
	_, err := uow.LoanApplicationRepository().UpdateStatus(context.Background(), app.Id, entity.LoanStatusApproved)
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	publisher := &fakePublisher{}
	s := NewPortalStep(factory, publisher, zap.NewNop())

	state := map[string]any{"phase": phaseAwaitingCommand}
	evs := execute(t, s, state, "reject 1")

	texts := messageTexts(evs)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "not found or not pending")
	assert.Empty(t, publisher.decided)

	apps, err := uow.LoanApplicationRepository().FindAll(context.Background(),
		specification.ByID{ID: app.Id})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, entity.LoanStatusApproved, apps[0].Status)
}

func TestPortalStep_InvalidCommandsRedisplayQueue(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		expected string
	}{
		{name: "unknown verb", command: "escalate 1", expected: "Invalid command format"},
		{name: "missing id", command: "approve", expected: "Invalid command format"},
		{name: "non numeric id", command: "approve one", expected: "Loan ID must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newTestFactory()
			seedPendingApplication(t, factory, 7)
			s := NewPortalStep(factory, &fakePublisher{}, zap.NewNop())

			state := map[string]any{"phase": phaseAwaitingCommand}
			evs := execute(t, s, state, tt.command)

			texts := messageTexts(evs)
			require.Len(t, texts, 1)
			assert.Contains(t, texts[0], tt.expected)

			last := lastEvent(t, evs)
			require.Equal(t, dialog.EventTransition, last.Kind)
			assert.Equal(t, dialog.StepPortal, last.Next)
		})
	}
}

func TestPortalStep_ExitReturnsToGreeting(t *testing.T) {
	factory := newTestFactory()
	seedPendingApplication(t, factory, 7)
	s := NewPortalStep(factory, &fakePublisher{}, zap.NewNop())

	state := map[string]any{"phase": phaseAwaitingCommand}
	evs := execute(t, s, state, "  Exit ")

	texts := messageTexts(evs)
	require.Len(t, texts, 1)
	assert.Equal(t, "Logging out. Goodbye!", texts[0])

	last := lastEvent(t, evs)
	require.Equal(t, dialog.EventTransition, last.Kind)
	assert.Equal(t, dialog.StepGreetClassify, last.Next)
}
