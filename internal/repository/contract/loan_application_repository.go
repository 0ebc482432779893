package contract

import (
	"context"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/specification"
)

type LoanApplicationRepository interface {
	Create(ctx context.Context, app *entity.LoanApplication) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LoanApplication, error)
	// UpdateStatus flips a Pending application to the given status. Returns
	// false when the application does not exist or is no longer Pending;
	// the stored status is left unchanged in that case.
	UpdateStatus(ctx context.Context, id int64, status entity.LoanStatus) (bool, error)
}
