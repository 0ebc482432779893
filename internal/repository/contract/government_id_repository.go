package contract

import (
	"context"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/specification"
)

type GovernmentIDRepository interface {
	// CreateIfAbsent stores the record unless the customer already has one.
	// At most one government ID ever exists per customer.
	CreateIfAbsent(ctx context.Context, id *entity.GovernmentID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GovernmentID, error)
}
