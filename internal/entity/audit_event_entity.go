package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditEvent records a domain event consumed off the bus (application
// submitted / decided) for later review.
type AuditEvent struct {
	Id        uuid.UUID
	Topic     string
	Message   string
	Details   map[string]any
	CreatedAt time.Time
}
