package events

import (
	"context"
	"time"
)

// Topic names carried on the in-process message bus.
const (
	TopicApplicationSubmitted = "loan.application.submitted"
	TopicApplicationDecided   = "loan.application.decided"
)

// ApplicationSubmitted is published when an application has passed every
// eligibility gate and been created in Pending status.
type ApplicationSubmitted struct {
	ApplicationId int64     `json:"application_id"`
	CustomerId    int64     `json:"customer_id"`
	Amount        int64     `json:"amount"`
	Purpose       string    `json:"purpose"`
	TenureYears   int       `json:"tenure_years"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ApplicationDecided is published when staff approve or reject a
// pending application through the portal.
type ApplicationDecided struct {
	ApplicationId int64     `json:"application_id"`
	CustomerId    int64     `json:"customer_id"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher pushes domain events onto the bus. Implementations must not
// block the conversational turn on downstream consumers.
type Publisher interface {
	PublishApplicationSubmitted(ctx context.Context, event ApplicationSubmitted) error
	PublishApplicationDecided(ctx context.Context, event ApplicationDecided) error
}
