package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/gridrush/tictactoe-agent/internal/entity"
	"github.com/gridrush/tictactoe-agent/internal/repository"
	"github.com/gridrush/tictactoe-agent/internal/service"
)

const (
	ActionStart   = "start"
	ActionMove    = "move"
	ActionPrint   = "print"
	ActionCommand = "command"
)

const usageReply = "Unknown action. Valid actions: start, move, print, command."

// ActionRequest is the single external entry contract: one action per
// invocation, with the move or command text when the action needs it.
type ActionRequest struct {
	Action  string `json:"action"`
	Move    string `json:"move,omitempty"`
	Command string `json:"command,omitempty"`
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
}

// Dispatcher routes actions to the game flow service. It owns one
// session per conversation ID and serializes access per session with a
// keyed mutex, so two concurrent actions never mutate the same session.
type Dispatcher struct {
	logger *slog.Logger

	sessionRepo sessionRepo
	flow        service.GameFlowService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDispatcher(logger *slog.Logger, sessionRepo sessionRepo, flow service.GameFlowService) *Dispatcher {
	return &Dispatcher{
		logger:      logger,
		sessionRepo: sessionRepo,
		flow:        flow,
		locks:       make(map[string]*sync.Mutex),
	}
}

// Dispatch executes one action against the conversation's session and
// returns the display text. User mistakes (bad moves, unknown actions)
// come back as guidance text; the error is reserved for storage and
// contract failures.
func (that *Dispatcher) Dispatch(ctx context.Context, sessionID string, req ActionRequest) (string, error) {
	lock := that.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := that.getOrCreateSession(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load session: %w", err)
	}

	switch strings.ToLower(req.Action) {
	case ActionStart:
		reply := that.flow.StartGame(session)

		return reply, that.saveSession(ctx, session)

	case ActionMove:
		if req.Move == "" {
			return "The move action needs a \"move\" field, e.g. {\"action\": \"move\", \"move\": \"(0, 2)\"}.", nil
		}

		reply, err := that.flow.ApplyMove(session, req.Move)
		if err != nil {
			return "", fmt.Errorf("failed to apply move: %w", err)
		}

		return reply, that.saveSession(ctx, session)

	case ActionPrint:
		// pure read, nothing to persist
		return that.flow.RenderState(session), nil

	case ActionCommand:
		if req.Command == "" {
			return "The command action needs a \"command\" field with the decision text.", nil
		}

		reply := that.flow.HandleCommand(ctx, session, req.Command)

		return reply, that.saveSession(ctx, session)

	default:
		return usageReply, nil
	}
}

func (that *Dispatcher) getOrCreateSession(ctx context.Context, sessionID string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, sessionID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return entity.NewSession(sessionID), nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	return session, nil
}

func (that *Dispatcher) saveSession(ctx context.Context, session *entity.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (that *Dispatcher) sessionLock(sessionID string) *sync.Mutex {
	that.mu.Lock()
	defer that.mu.Unlock()

	lock, ok := that.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[sessionID] = lock
	}

	return lock
}
