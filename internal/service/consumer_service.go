package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/pkg/mailer"
	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the loan-application topics: every event is
// written to the audit trail, and the affected customer is notified by
// email.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	logger       *zap.Logger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	logger *zap.Logger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		uowFactory:   uowFactory,
		emailService: emailService,
		logger:       logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	submitted, err := cs.pubSub.Subscribe(ctx, events.TopicApplicationSubmitted)
	if err != nil {
		return err
	}
	decided, err := cs.pubSub.Subscribe(ctx, events.TopicApplicationDecided)
	if err != nil {
		return err
	}

	go func() {
		for msg := range submitted {
			cs.processSubmitted(ctx, msg)
		}
	}()
	go func() {
		for msg := range decided {
			cs.processDecided(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processSubmitted(ctx context.Context, msg *message.Message) {
	var event events.ApplicationSubmitted
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("failed to unmarshal submitted event", zap.Error(err))
		msg.Ack() // invalid payloads would retry forever
		return
	}

	audit := fmt.Sprintf("application %d submitted by customer %d", event.ApplicationId, event.CustomerId)
	if err := cs.writeAudit(ctx, events.TopicApplicationSubmitted, audit, map[string]any{
		"application_id": event.ApplicationId,
		"customer_id":    event.CustomerId,
		"amount":         event.Amount,
		"purpose":        event.Purpose,
		"tenure_years":   event.TenureYears,
	}); err != nil {
		cs.logger.Error("failed to write audit event", zap.Error(err))
		msg.Nack()
		return
	}

	customer := cs.lookupCustomer(ctx, event.CustomerId)
	if customer != nil {
		err := cs.emailService.SendSubmissionNotice(
			customer.Email, customer.FullName,
			event.ApplicationId, event.Amount, event.Purpose,
		)
		if err != nil {
			// Mail is best-effort; the audit record already exists.
			cs.logger.Warn("failed to send submission notice",
				zap.Int64("application_id", event.ApplicationId),
				zap.Error(err),
			)
		}
	}

	msg.Ack()
}

func (cs *consumerService) processDecided(ctx context.Context, msg *message.Message) {
	var event events.ApplicationDecided
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("failed to unmarshal decided event", zap.Error(err))
		msg.Ack()
		return
	}

	audit := fmt.Sprintf("application %d decided: %s", event.ApplicationId, event.Status)
	if err := cs.writeAudit(ctx, events.TopicApplicationDecided, audit, map[string]any{
		"application_id": event.ApplicationId,
		"customer_id":    event.CustomerId,
		"status":         event.Status,
	}); err != nil {
		cs.logger.Error("failed to write audit event", zap.Error(err))
		msg.Nack()
		return
	}

	customer := cs.lookupCustomer(ctx, event.CustomerId)
	if customer != nil {
		err := cs.emailService.SendDecisionNotice(
			customer.Email, customer.FullName,
			event.ApplicationId, event.Status,
		)
		if err != nil {
			cs.logger.Warn("failed to send decision notice",
				zap.Int64("application_id", event.ApplicationId),
				zap.Error(err),
			)
		}
	}

	msg.Ack()
}

func (cs *consumerService) writeAudit(ctx context.Context, topic, msgText string, details map[string]any) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()
	err := uow.AuditEventRepository().Create(ctx, &entity.AuditEvent{
		Id:        uuid.New(),
		Topic:     topic,
		Message:   msgText,
		Details:   details,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	return uow.Commit()
}

func (cs *consumerService) lookupCustomer(ctx context.Context, customerID int64) *entity.Customer {
	if customerID == 0 {
		return nil
	}
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: customerID})
	if err != nil {
		cs.logger.Error("failed to look up customer",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)
		return nil
	}
	return customer
}
