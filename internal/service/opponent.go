package service

import (
	"github.com/gridrush/tictactoe-agent/internal/apperror"
	"github.com/gridrush/tictactoe-agent/internal/entity"
	"github.com/gridrush/tictactoe-agent/internal/tictactoe"
)

type OpponentService interface {
	SelectMove(board *entity.Board) (entity.Move, error)
}

type opponentService struct{}

func NewOpponentService() OpponentService {
	return &opponentService{}
}

// cornerOrder is the fixed enumeration order for the positional rule.
var cornerOrder = [4]entity.Move{
	{Row: 0, Col: 0},
	{Row: 0, Col: 2},
	{Row: 2, Col: 0},
	{Row: 2, Col: 2},
}

// SelectMove picks the opponent's move with a deterministic
// priority-ordered heuristic: win now, block the human's winning cell,
// take the center, take the first empty corner, take the first empty
// cell. Invoking it on a full board is a contract violation; callers
// must check win/draw first.
func (that *opponentService) SelectMove(board *entity.Board) (entity.Move, error) {
	if move, ok := findCompletingMove(board, entity.OpponentMark); ok {
		return move, nil
	}

	if move, ok := findCompletingMove(board, entity.PlayerMark); ok {
		return move, nil
	}

	if board[1][1] == entity.EmptyCell {
		return entity.Move{Row: 1, Col: 1}, nil
	}

	for _, move := range cornerOrder {
		if board[move.Row][move.Col] == entity.EmptyCell {
			return move, nil
		}
	}

	for row := 0; row < entity.Size; row++ {
		for col := 0; col < entity.Size; col++ {
			if board[row][col] == entity.EmptyCell {
				return entity.Move{Row: row, Col: col}, nil
			}
		}
	}

	return entity.Move{}, apperror.ErrNoLegalMove
}

// findCompletingMove returns the first empty cell in row-major order
// that would complete a line for mark. The scan order is the tie-break.
func findCompletingMove(board *entity.Board, mark string) (entity.Move, bool) {
	for row := 0; row < entity.Size; row++ {
		for col := 0; col < entity.Size; col++ {
			move := entity.Move{Row: row, Col: col}
			if tictactoe.CompletesLine(board, move, mark) {
				return move, true
			}
		}
	}

	return entity.Move{}, false
}
