package step

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/memory"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/dialog"
	"loan-agent-be/pkg/events"
	"loan-agent-be/pkg/llm"
	"loan-agent-be/pkg/vision"

	"github.com/stretchr/testify/require"
)

// fakeLLM returns the scripted reply whose key occurs in the prompt.
type fakeLLM struct {
	replies map[string]string
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("empty history")
	}
	return f.Generate(context.Background(), history[len(history)-1].Content)
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ ...llm.Option) (string, error) {
	for key, reply := range f.replies {
		if strings.Contains(prompt, key) {
			return reply, nil
		}
	}
	return "", fmt.Errorf("no scripted reply for prompt %q", prompt)
}

// fakeRetriever returns the passages whose key occurs in the query.
type fakeRetriever struct {
	passages map[string][]string
}

func (f *fakeRetriever) Query(_ context.Context, text string, _ int) ([]string, error) {
	for key, passages := range f.passages {
		if strings.Contains(text, key) {
			return passages, nil
		}
	}
	return nil, nil
}

type fakeVision struct {
	extraction *vision.IDExtraction
	err        error
}

func (f *fakeVision) Extract(_ context.Context, _ string) (*vision.IDExtraction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.extraction, nil
}

type fakePublisher struct {
	submitted []events.ApplicationSubmitted
	decided   []events.ApplicationDecided
}

func (f *fakePublisher) PublishApplicationSubmitted(_ context.Context, event events.ApplicationSubmitted) error {
	f.submitted = append(f.submitted, event)
	return nil
}

func (f *fakePublisher) PublishApplicationDecided(_ context.Context, event events.ApplicationDecided) error {
	f.decided = append(f.decided, event)
	return nil
}

func newTestFactory() unitofwork.RepositoryFactory {
	return memory.NewRepositoryFactory(memory.NewRecordStore())
}

func seedCustomer(t *testing.T, factory unitofwork.RepositoryFactory, customer entity.Customer) entity.Customer {
	t.Helper()
	customer.CreatedAt = time.Now()
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.CustomerRepository().Create(context.Background(), &customer))
	return customer
}

func seedGovernmentID(t *testing.T, factory unitofwork.RepositoryFactory, govID entity.GovernmentID) {
	t.Helper()
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.GovernmentIDRepository().CreateIfAbsent(context.Background(), &govID))
}

func seedApplication(t *testing.T, factory unitofwork.RepositoryFactory, app entity.LoanApplication) entity.LoanApplication {
	t.Helper()
	uow := factory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.LoanApplicationRepository().Create(context.Background(), &app))
	return app
}

// execute runs one step invocation against the shared work state and
// returns the emitted events.
func execute(t *testing.T, s dialog.Step, state map[string]any, payload any) []dialog.Event {
	t.Helper()
	sc := dialog.NewContext(state)
	require.NoError(t, s.Execute(context.Background(), sc, payload))
	return sc.Events()
}

func lastEvent(t *testing.T, evs []dialog.Event) dialog.Event {
	t.Helper()
	require.NotEmpty(t, evs)
	return evs[len(evs)-1]
}

func messageTexts(evs []dialog.Event) []string {
	var texts []string
	for _, ev := range evs {
		if ev.Kind == dialog.EventDisplayMessage {
			texts = append(texts, ev.Text)
		}
	}
	return texts
}
