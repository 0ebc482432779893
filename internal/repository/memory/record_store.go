package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/contract"
	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// RecordStore is an in-memory implementation of the record-store contracts.
// It backs the step tests and the DB-less demo mode of cmd/chat. Ids are
// assigned max-plus-one, matching the flat-file store it stands in for.
type RecordStore struct {
	mu           sync.Mutex
	customers    []*entity.Customer
	governmentID []*entity.GovernmentID
	applications []*entity.LoanApplication
	auditEvents  []*entity.AuditEvent
	guideChunks  []*entity.GuideChunk
}

func NewRecordStore() *RecordStore {
	return &RecordStore{}
}

// customerMatch evaluates the subset of specifications the memory store
// understands against a customer record.
func customerMatch(c *entity.Customer, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if c.Id != sp.ID {
				return false
			}
		case specification.ByEmailFold:
			if !strings.EqualFold(c.Email, sp.Email) {
				return false
			}
		}
	}
	return true
}

func applicationMatch(a *entity.LoanApplication, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if a.Id != sp.ID {
				return false
			}
		case specification.ByCustomerID:
			if a.CustomerId != sp.CustomerID {
				return false
			}
		case specification.ByStatus:
			if string(a.Status) != sp.Status {
				return false
			}
		}
	}
	return true
}

// --- CustomerRepository ---

type customerRepository struct {
	store *RecordStore
}

func (r *customerRepository) Create(_ context.Context, customer *entity.Customer) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var maxID int64
	for _, c := range r.store.customers {
		if c.Id > maxID {
			maxID = c.Id
		}
	}
	customer.Id = maxID + 1
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now()
	}
	clone := *customer
	r.store.customers = append(r.store.customers, &clone)
	return nil
}

func (r *customerRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, c := range r.store.customers {
		if customerMatch(c, specs) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *customerRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []*entity.Customer
	for _, c := range r.store.customers {
		if customerMatch(c, specs) {
			clone := *c
			result = append(result, &clone)
		}
	}
	return result, nil
}

// --- GovernmentIDRepository ---

type governmentIDRepository struct {
	store *RecordStore
}

func (r *governmentIDRepository) CreateIfAbsent(_ context.Context, id *entity.GovernmentID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var maxID int64
	for _, g := range r.store.governmentID {
		if g.CustomerId == id.CustomerId {
			return nil
		}
		if g.Id > maxID {
			maxID = g.Id
		}
	}
	id.Id = maxID + 1
	if id.CreatedAt.IsZero() {
		id.CreatedAt = time.Now()
	}
	clone := *id
	r.store.governmentID = append(r.store.governmentID, &clone)
	return nil
}

func (r *governmentIDRepository) FindOne(_ context.Context, specs ...specification.Specification) (*entity.GovernmentID, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, g := range r.store.governmentID {
		matched := true
		for _, s := range specs {
			switch sp := s.(type) {
			case specification.ByID:
				if g.Id != sp.ID {
					matched = false
				}
			case specification.ByCustomerID:
				if g.CustomerId != sp.CustomerID {
					matched = false
				}
			}
		}
		if matched {
			clone := *g
			return &clone, nil
		}
	}
	return nil, nil
}

// --- LoanApplicationRepository ---

type loanApplicationRepository struct {
	store *RecordStore
}

func (r *loanApplicationRepository) Create(_ context.Context, app *entity.LoanApplication) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var maxID int64
	for _, a := range r.store.applications {
		if a.Id > maxID {
			maxID = a.Id
		}
	}
	app.Id = maxID + 1
	clone := *app
	r.store.applications = append(r.store.applications, &clone)
	return nil
}

func (r *loanApplicationRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.LoanApplication, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []*entity.LoanApplication
	for _, a := range r.store.applications {
		if applicationMatch(a, specs) {
			clone := *a
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

func (r *loanApplicationRepository) UpdateStatus(_ context.Context, id int64, status entity.LoanStatus) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, a := range r.store.applications {
		if a.Id == id && a.Status == entity.LoanStatusPending {
			a.Status = status
			return true, nil
		}
	}
	return false, nil
}

// --- AuditEventRepository ---

type auditEventRepository struct {
	store *RecordStore
}

func (r *auditEventRepository) Create(_ context.Context, event *entity.AuditEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if event.Id == uuid.Nil {
		event.Id = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	clone := *event
	r.store.auditEvents = append(r.store.auditEvents, &clone)
	return nil
}

func (r *auditEventRepository) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.AuditEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	result := make([]*entity.AuditEvent, 0, len(r.store.auditEvents))
	for _, e := range r.store.auditEvents {
		clone := *e
		result = append(result, &clone)
	}
	return result, nil
}

// --- GuideChunkRepository ---
//
// The memory store has no vector index; SearchSimilar falls back to
// insertion order, which is enough for tests that stub the retriever.

type guideChunkRepository struct {
	store *RecordStore
}

func (r *guideChunkRepository) Create(_ context.Context, chunk *entity.GuideChunk) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if chunk.Id == uuid.Nil {
		chunk.Id = uuid.New()
	}
	clone := *chunk
	r.store.guideChunks = append(r.store.guideChunks, &clone)
	return nil
}

func (r *guideChunkRepository) Count(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.guideChunks)), nil
}

func (r *guideChunkRepository) DeleteAll(_ context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.guideChunks = nil
	return nil
}

func (r *guideChunkRepository) SearchSimilar(_ context.Context, _ []float32, limit int) ([]*entity.GuideChunk, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if limit <= 0 || limit > len(r.store.guideChunks) {
		limit = len(r.store.guideChunks)
	}
	result := make([]*entity.GuideChunk, 0, limit)
	for _, g := range r.store.guideChunks[:limit] {
		clone := *g
		result = append(result, &clone)
	}
	return result, nil
}

// --- UnitOfWork over the memory store ---

type unitOfWork struct {
	store *RecordStore
}

func (u *unitOfWork) Begin(_ context.Context) error { return nil }
func (u *unitOfWork) Commit() error                 { return nil }
func (u *unitOfWork) Rollback() error               { return nil }

func (u *unitOfWork) CustomerRepository() contract.CustomerRepository {
	return &customerRepository{store: u.store}
}

func (u *unitOfWork) GovernmentIDRepository() contract.GovernmentIDRepository {
	return &governmentIDRepository{store: u.store}
}

func (u *unitOfWork) LoanApplicationRepository() contract.LoanApplicationRepository {
	return &loanApplicationRepository{store: u.store}
}

func (u *unitOfWork) AuditEventRepository() contract.AuditEventRepository {
	return &auditEventRepository{store: u.store}
}

func (u *unitOfWork) GuideChunkRepository() contract.GuideChunkRepository {
	return &guideChunkRepository{store: u.store}
}

type repositoryFactory struct {
	store *RecordStore
}

func (f *repositoryFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

// NewRepositoryFactory exposes the memory store through the same factory
// interface the gorm-backed store implements.
func NewRepositoryFactory(store *RecordStore) unitofwork.RepositoryFactory {
	return &repositoryFactory{store: store}
}
