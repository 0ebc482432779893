package contract

import (
	"context"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/specification"
)

type AuditEventRepository interface {
	Create(ctx context.Context, event *entity.AuditEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEvent, error)
}
