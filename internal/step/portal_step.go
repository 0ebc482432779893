package step

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"loan-agent-be/internal/entity"
	"loan-agent-be/internal/repository/specification"
	"loan-agent-be/internal/repository/unitofwork"
	"loan-agent-be/pkg/dialog"
	"loan-agent-be/pkg/events"

	"go.uber.org/zap"
)

const phaseAwaitingCommand = "awaiting_command"

// PortalStep is the staff view: it lists pending applications and
// settles them with approve/reject commands. An empty queue or `exit`
// routes back to the greeting.
type PortalStep struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	logger     *zap.Logger
}

var _ dialog.Step = &PortalStep{}

func NewPortalStep(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, logger *zap.Logger) *PortalStep {
	return &PortalStep{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *PortalStep) Name() dialog.StepName {
	return dialog.StepPortal
}

func (s *PortalStep) Execute(ctx context.Context, sc *dialog.Context, payload any) error {
	switch sc.Phase() {
	case dialog.PhaseStart:
		return s.listPending(ctx, sc)
	case phaseAwaitingCommand:
		command, _ := payload.(string)
		return s.handleCommand(ctx, sc, command)
	}
	return nil
}

func (s *PortalStep) listPending(ctx context.Context, sc *dialog.Context) error {
	sc.Emit(dialog.Message("Fetching pending loan applications..."))

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pending, err := uow.LoanApplicationRepository().FindAll(ctx,
		specification.ByStatus{Status: string(entity.LoanStatusPending)},
		specification.OrderBy{Field: "id"},
	)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		sc.Emit(dialog.Message("There are no pending loan applications."))
		sc.Emit(dialog.Transition(dialog.StepGreetClassify, nil))
		return nil
	}

	rows := make([]map[string]any, 0, len(pending))
	for _, app := range pending {
		rows = append(rows, map[string]any{
			"loan_id":          app.Id,
			"customer_id":      app.CustomerId,
			"loan_amount":      app.Amount,
			"loan_purpose":     app.Purpose,
			"application_date": app.ApplicationDate.Format("2006-01-02"),
			"status":           string(app.Status),
		})
	}
	sc.Emit(dialog.Table(rows))
	sc.Emit(dialog.Message("To take action, type `approve <loan_id>` or `reject <loan_id>`. Type `exit` to log out."))
	sc.SetPhase(phaseAwaitingCommand)
	sc.Emit(dialog.RequestInput())
	return nil
}

func (s *PortalStep) handleCommand(ctx context.Context, sc *dialog.Context, command string) error {
	command = strings.ToLower(strings.TrimSpace(command))

	if command == "exit" {
		sc.Emit(dialog.Message("Logging out. Goodbye!"))
		sc.Emit(dialog.Transition(dialog.StepGreetClassify, nil))
		return nil
	}

	parts := strings.Fields(command)
	var status entity.LoanStatus
	if len(parts) == 2 {
		switch parts[0] {
		case "approve":
			status = entity.LoanStatusApproved
		case "reject":
			status = entity.LoanStatusRejected
		}
	}

	switch {
	case status == "":
		sc.Emit(dialog.Message("Invalid command format. Use `approve <id>`, `reject <id>`, or `exit`."))
	default:
		loanID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			sc.Emit(dialog.Message("Invalid command. Loan ID must be a number."))
			break
		}
		if err := s.decide(ctx, sc, loanID, status); err != nil {
			return err
		}
	}

	// Redisplay the (possibly updated) queue.
	sc.Emit(dialog.Transition(dialog.StepPortal, nil))
	return nil
}

func (s *PortalStep) decide(ctx context.Context, sc *dialog.Context, loanID int64, status entity.LoanStatus) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	applications, err := uow.LoanApplicationRepository().FindAll(ctx, specification.ByID{ID: loanID})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()
	updated, err := uow.LoanApplicationRepository().UpdateStatus(ctx, loanID, status)
	if err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if !updated {
		sc.Emit(dialog.Message(fmt.Sprintf("❌ Loan ID %d not found or not pending.", loanID)))
		return nil
	}

	sc.Emit(dialog.Message(fmt.Sprintf("✅ Loan ID %d has been %s.", loanID, strings.ToLower(string(status)))))

	var customerID int64
	if len(applications) > 0 {
		customerID = applications[0].CustomerId
	}
	if err := s.publisher.PublishApplicationDecided(ctx, events.ApplicationDecided{
		ApplicationId: loanID,
		CustomerId:    customerID,
		Status:        string(status),
		OccurredAt:    time.Now(),
	}); err != nil {
		s.logger.Warn("failed to publish application decided event",
			zap.Int64("application_id", loanID),
			zap.Error(err),
		)
	}
	return nil
}
