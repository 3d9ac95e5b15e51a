package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gridrush/tictactoe-agent/internal/apperror"
	"github.com/gridrush/tictactoe-agent/internal/entity"
	"github.com/gridrush/tictactoe-agent/internal/tictactoe"
)

// Funder requests faucet funds for a winning player. Provided by an
// external collaborator; the flow reacts to failures but never retries.
type Funder interface {
	RequestFunds(ctx context.Context, token string, amount int) (string, error)
}

// Announcer posts a celebratory message. Same contract as Funder.
type Announcer interface {
	PostAnnouncement(ctx context.Context, text string) (string, error)
}

// RewardLedger records granted rewards. Recording is best-effort.
type RewardLedger interface {
	Record(ctx context.Context, reward *entity.Reward) error
}

// RewardOffer is the fixed token/amount pair offered on a win, plus
// the announcement text posted on confirmation.
type RewardOffer struct {
	Token        string
	Amount       int
	Announcement string
}

type GameFlowService interface {
	StartGame(session *entity.Session) string
	ApplyMove(session *entity.Session, moveText string) (string, error)
	HandleCommand(ctx context.Context, session *entity.Session, command string) string
	RenderState(session *entity.Session) string
}

type gameFlowService struct {
	logger *slog.Logger

	opponent  OpponentService
	funder    Funder
	announcer Announcer
	ledger    RewardLedger
	offer     RewardOffer
}

func NewGameFlowService(logger *slog.Logger, opponent OpponentService, funder Funder, announcer Announcer, ledger RewardLedger, offer RewardOffer) GameFlowService {
	return &gameFlowService{
		logger:    logger,
		opponent:  opponent,
		funder:    funder,
		announcer: announcer,
		ledger:    ledger,
		offer:     offer,
	}
}

// StartGame begins a fresh game in any state.
func (that *gameFlowService) StartGame(session *entity.Session) string {
	session.StartGame()

	return fmt.Sprintf("New game started. You are %s, I am %s.\n%s\nYour move. Send coordinates like (0, 2).",
		entity.PlayerMark, entity.OpponentMark, session.Board.Render())
}

// ApplyMove parses and applies the human's move, then answers with the
// opponent's move when the game continues. Malformed and illegal moves
// are answered with guidance text and leave the session untouched. The
// returned error is non-nil only on a contract violation in the
// opponent policy.
func (that *gameFlowService) ApplyMove(session *entity.Session, moveText string) (string, error) {
	if !session.IsOngoing() {
		that.logger.Debug("move rejected", "sessionID", session.ID, "error", apperror.ErrNoActiveGame)

		return "No game in progress. Send the start action to begin one.", nil
	}

	move, err := tictactoe.ParseMove(moveText)
	if err != nil {
		return fmt.Sprintf("I couldn't read %q as a move. Use the format (row, col) with row and col between 0 and 2.", moveText), nil
	}

	if err = tictactoe.ValidateMove(&session.Board, move); err != nil {
		switch {
		case errors.Is(err, apperror.ErrOutOfRange):
			return fmt.Sprintf("Cell (%d, %d) is off the board. Rows and columns go from 0 to 2.", move.Row, move.Col), nil
		case errors.Is(err, apperror.ErrCellOccupied):
			return fmt.Sprintf("Cell (%d, %d) is already taken. Pick an empty cell.", move.Row, move.Col), nil
		default:
			return "", fmt.Errorf("failed to validate move: %w", err)
		}
	}

	session.Board.Set(move.Row, move.Col, entity.PlayerMark)

	if tictactoe.HasWinner(&session.Board) {
		session.Winner = entity.PlayerMark
		session.Status = entity.StatusAwaitingFunding
		session.Turn = ""

		return fmt.Sprintf("You played (%d, %d).\n%s\nYou won! Congratulations.\n%s",
			move.Row, move.Col, session.Board.Render(), that.fundingOffer()), nil
	}

	if tictactoe.IsDraw(&session.Board) {
		return that.finishDraw(session, fmt.Sprintf("You played (%d, %d).", move.Row, move.Col)), nil
	}

	session.Turn = entity.ToggleMark(session.Turn)

	reply, err := that.applyOpponentMove(session, move)
	if err != nil {
		return "", err
	}

	return reply, nil
}

func (that *gameFlowService) applyOpponentMove(session *entity.Session, playerMove entity.Move) (string, error) {
	botMove, err := that.opponent.SelectMove(&session.Board)
	if err != nil {
		// reachable only if win/draw checks were skipped
		return "", fmt.Errorf("opponent policy failed: %w", err)
	}

	session.Board.Set(botMove.Row, botMove.Col, entity.OpponentMark)

	movesLine := fmt.Sprintf("You played (%d, %d). I played (%d, %d).",
		playerMove.Row, playerMove.Col, botMove.Row, botMove.Col)

	if tictactoe.HasWinner(&session.Board) {
		session.Winner = entity.OpponentMark
		session.Status = entity.StatusIdle
		session.Turn = ""

		return fmt.Sprintf("%s\n%s\nI won this one. Send start for a rematch.",
			movesLine, session.Board.Render()), nil
	}

	if tictactoe.IsDraw(&session.Board) {
		return that.finishDraw(session, movesLine), nil
	}

	session.Turn = entity.ToggleMark(session.Turn)

	return fmt.Sprintf("%s\n%s\nYour move.", movesLine, session.Board.Render()), nil
}

func (that *gameFlowService) finishDraw(session *entity.Session, movesLine string) string {
	session.Winner = entity.MarkTie
	session.Status = entity.StatusIdle
	session.Turn = ""

	return fmt.Sprintf("%s\n%s\nIt's a draw. Send start to play again.", movesLine, session.Board.Render())
}

// HandleCommand resolves the funding and announcement decisions. In
// any other state it answers with the available command forms.
func (that *gameFlowService) HandleCommand(ctx context.Context, session *entity.Session, command string) string {
	switch {
	case session.IsAwaitingFunding():
		return that.handleFundingDecision(ctx, session, command)
	case session.IsAwaitingAnnouncement():
		return that.handleAnnouncementDecision(ctx, session, command)
	default:
		return "Invalid command. Available commands:\n" +
			"  - after winning a game: \"yes\" (or mention \"request\" or \"faucet\") to claim the faucet reward\n" +
			"  - when offered a shout-out: \"yes\" to post the announcement"
	}
}

func (that *gameFlowService) handleFundingDecision(ctx context.Context, session *entity.Session, command string) string {
	log := that.logger.With("method", "handleFundingDecision", "sessionID", session.ID)

	if !isFundingAffirmative(command) {
		session.Status = entity.StatusAwaitingAnnouncement

		return "No problem, keeping the faucet closed.\n" + that.announcementOffer()
	}

	if session.RewardRef != "" {
		log.Info("duplicate funding request rejected", "txRef", session.RewardRef, "error", apperror.ErrRewardAlreadyClaimed)
		session.Status = entity.StatusAwaitingAnnouncement

		return fmt.Sprintf("I already requested your reward (transaction %s); I won't request it twice.\n%s",
			session.RewardRef, that.announcementOffer())
	}

	txRef, err := that.funder.RequestFunds(ctx, that.offer.Token, that.offer.Amount)
	if err != nil {
		log.Error("faucet request failed", "error", err)
		session.Status = entity.StatusAwaitingAnnouncement

		return "I couldn't reach the faucet, so no reward this time. Sorry about that.\n" + that.announcementOffer()
	}

	session.RewardRef = txRef
	session.Status = entity.StatusAwaitingAnnouncement

	reward := &entity.Reward{
		SessionID: session.ID,
		TxRef:     txRef,
		Token:     that.offer.Token,
		Amount:    that.offer.Amount,
		CreatedAt: time.Now().UTC(),
	}
	if err = that.ledger.Record(ctx, reward); err != nil {
		log.Error("failed to record reward", "txRef", txRef, "error", err)
	}

	return fmt.Sprintf("Faucet request sent! Transaction reference: %s.\n%s", txRef, that.announcementOffer())
}

func (that *gameFlowService) handleAnnouncementDecision(ctx context.Context, session *entity.Session, command string) string {
	log := that.logger.With("method", "handleAnnouncementDecision", "sessionID", session.ID)

	session.Status = entity.StatusIdle

	if !isAnnouncementAffirmative(command) {
		return "Alright, no announcement. Send start to play again."
	}

	confirmation, err := that.announcer.PostAnnouncement(ctx, that.offer.Announcement)
	if err != nil {
		log.Error("announcement failed", "error", err)
		return "I couldn't post the announcement. Send start to play again."
	}

	return fmt.Sprintf("Announcement posted (%s). Send start to play again.", confirmation)
}

// RenderState is the pure print action: a state-appropriate header
// plus the board, with no transition.
func (that *gameFlowService) RenderState(session *entity.Session) string {
	switch session.Status {
	case entity.StatusOngoing:
		return "Game in progress. Your move.\n" + session.Board.Render()
	case entity.StatusAwaitingFunding:
		return fmt.Sprintf("You won the last game.\n%s\n%s", session.Board.Render(), that.fundingOffer())
	case entity.StatusAwaitingAnnouncement:
		return fmt.Sprintf("You won the last game.\n%s\n%s", session.Board.Render(), that.announcementOffer())
	default:
		return "No active game. Send the start action to begin one."
	}
}

func (that *gameFlowService) fundingOffer() string {
	return fmt.Sprintf("Want me to request %d %s from the faucet for you? (yes/no)", that.offer.Amount, that.offer.Token)
}

func (that *gameFlowService) announcementOffer() string {
	return "Want me to tweet about your win? (yes/no)"
}

// isFundingAffirmative follows the funding decision keywords: "yes",
// or any text mentioning "request" or "faucet".
func isFundingAffirmative(command string) bool {
	text := strings.ToLower(strings.TrimSpace(command))

	return text == "yes" || strings.Contains(text, "request") || strings.Contains(text, "faucet")
}

// isAnnouncementAffirmative accepts only "yes", case-insensitively.
func isAnnouncementAffirmative(command string) bool {
	return strings.EqualFold(strings.TrimSpace(command), "yes")
}
