package service

import (
	"context"
	"fmt"

	"loan-agent-be/internal/repository/memory"
	"loan-agent-be/pkg/dialog"
	"loan-agent-be/pkg/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxTransitionHops bounds how many step transitions one user turn may
// chain through before the orchestrator declares the flow stuck.
const maxTransitionHops = 16

// TurnResult is what one user turn produced: the new transcript entries
// and the session's wait state afterwards.
type TurnResult struct {
	SessionID string
	Messages  []store.Message
	Awaiting  string // "input", "file", or "" when the session ended or halted
	Ended     bool
	Halted    bool
}

type IConversationService interface {
	// StartSession creates a session and runs the greeting step.
	StartSession(ctx context.Context) (*TurnResult, error)

	// HandleInput feeds a free-text reply to the session's current step.
	HandleInput(ctx context.Context, sessionID, text string) (*TurnResult, error)

	// HandleFile feeds an uploaded file path to the session's current step.
	HandleFile(ctx context.Context, sessionID, filePath string) (*TurnResult, error)

	// History returns the full transcript of a session.
	History(sessionID string) ([]store.Message, error)
}

type conversationService struct {
	registry    *dialog.Registry
	sessionRepo *memory.SessionRepository
	logger      *zap.Logger
}

func NewConversationService(
	registry *dialog.Registry,
	sessionRepo *memory.SessionRepository,
	logger *zap.Logger,
) IConversationService {
	return &conversationService{
		registry:    registry,
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

func (cs *conversationService) StartSession(ctx context.Context) (*TurnResult, error) {
	session := store.NewSession(uuid.New().String())
	result := cs.drive(ctx, session, nil)
	cs.sessionRepo.Save(session)
	return result, nil
}

func (cs *conversationService) HandleInput(ctx context.Context, sessionID, text string) (*TurnResult, error) {
	session, ok := cs.sessionRepo.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if session.Halted {
		return nil, fmt.Errorf("session %s is halted", sessionID)
	}
	if !session.AwaitingInput {
		return nil, fmt.Errorf("session %s is not awaiting input", sessionID)
	}

	session.AwaitingInput = false
	session.AppendText(store.RoleUser, text)
	before := len(session.Transcript)

	result := cs.drive(ctx, session, text)
	result.Messages = session.Transcript[before:]
	cs.sessionRepo.Save(session)
	return result, nil
}

func (cs *conversationService) HandleFile(ctx context.Context, sessionID, filePath string) (*TurnResult, error) {
	session, ok := cs.sessionRepo.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	if session.Halted {
		return nil, fmt.Errorf("session %s is halted", sessionID)
	}
	if !session.AwaitingFile {
		return nil, fmt.Errorf("session %s is not awaiting a file", sessionID)
	}

	session.AwaitingFile = false
	session.AppendText(store.RoleUser, "[uploaded a document]")
	before := len(session.Transcript)

	result := cs.drive(ctx, session, filePath)
	result.Messages = session.Transcript[before:]
	cs.sessionRepo.Save(session)
	return result, nil
}

func (cs *conversationService) History(sessionID string) ([]store.Message, error) {
	session, ok := cs.sessionRepo.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	return session.Transcript, nil
}

// drive re-enters the active step with the payload and interprets the
// emitted events in order, chaining through transitions (which clear the
// work state) until a step suspends waiting for the user or the session
// ends. A collaborator fault halts the session with a generic notice
// rather than leaving it in an inconsistent phase.
func (cs *conversationService) drive(ctx context.Context, session *store.Session, payload any) *TurnResult {
	result := &TurnResult{SessionID: session.ID}
	start := len(session.Transcript)

	for hop := 0; ; hop++ {
		if hop == maxTransitionHops {
			// A transition chain this long never waits for the user; the
			// flow is cycling, so surface a fault instead of spinning.
			cs.logger.Error("transition chain exhausted hop budget",
				zap.String("session_id", session.ID),
				zap.String("step", string(session.CurrentStep)),
			)
			cs.halt(session, result)
			break
		}

		step, ok := cs.registry.Get(session.CurrentStep)
		if !ok {
			cs.logger.Error("unknown step",
				zap.String("session_id", session.ID),
				zap.String("step", string(session.CurrentStep)),
			)
			cs.halt(session, result)
			break
		}

		sc := dialog.NewContext(session.WorkState)
		if err := step.Execute(ctx, sc, payload); err != nil {
			cs.logger.Error("step execution failed",
				zap.String("session_id", session.ID),
				zap.String("step", string(step.Name())),
				zap.Error(err),
			)
			cs.halt(session, result)
			break
		}

		next, done := cs.interpret(session, result, sc.Events())
		if done {
			break
		}
		if next == nil {
			// A step that neither suspended nor transitioned is a flow
			// bug; treat it like a fault instead of spinning.
			cs.logger.Error("step emitted no terminal event",
				zap.String("session_id", session.ID),
				zap.String("step", string(step.Name())),
			)
			cs.halt(session, result)
			break
		}

		session.CurrentStep = next.Next
		session.WorkState = make(map[string]any)
		payload = next.Payload
	}

	result.Messages = session.Transcript[start:]
	return result
}

// interpret applies one invocation's events to the session. It returns
// the transition to follow, or done=true when the turn is over.
func (cs *conversationService) interpret(session *store.Session, result *TurnResult, evs []dialog.Event) (*dialog.Event, bool) {
	for _, ev := range evs {
		switch ev.Kind {
		case dialog.EventDisplayMessage:
			session.AppendText(store.RoleAssistant, ev.Text)
		case dialog.EventDisplayTable:
			session.AppendTable(ev.Table)
		case dialog.EventRequestInput:
			session.AwaitingInput = true
			result.Awaiting = "input"
			return nil, true
		case dialog.EventRequestFile:
			session.AwaitingFile = true
			result.Awaiting = "file"
			return nil, true
		case dialog.EventTransition:
			return &ev, false
		case dialog.EventEndSession:
			session.ResetFlow()
			result.Ended = true
			return nil, true
		}
	}
	return nil, false
}

func (cs *conversationService) halt(session *store.Session, result *TurnResult) {
	session.AppendText(store.RoleAssistant, "⚠️ Something went wrong on our side. Please start a new session.")
	session.Halted = true
	session.AwaitingInput = false
	session.AwaitingFile = false
	result.Halted = true
	result.Awaiting = ""
}
