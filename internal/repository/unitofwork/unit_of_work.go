package unitofwork

import (
	"context"

	"loan-agent-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CustomerRepository() contract.CustomerRepository
	GovernmentIDRepository() contract.GovernmentIDRepository
	LoanApplicationRepository() contract.LoanApplicationRepository
	AuditEventRepository() contract.AuditEventRepository
	GuideChunkRepository() contract.GuideChunkRepository
}
