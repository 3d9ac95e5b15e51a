package tictactoe

import (
	"fmt"
	"regexp"

	"github.com/gridrush/tictactoe-agent/internal/apperror"
	"github.com/gridrush/tictactoe-agent/internal/entity"
)

// movePattern accepts "(r, c)", "(r,c)" and "r,c" with optional
// surrounding whitespace; single-digit coordinates only. Range is
// checked separately by ValidateMove.
var movePattern = regexp.MustCompile(`^\s*\(?\s*(\d)\s*,\s*(\d)\s*\)?\s*$`)

// ParseMove converts move text into a Move.
func ParseMove(text string) (entity.Move, error) {
	matches := movePattern.FindStringSubmatch(text)
	if matches == nil {
		return entity.Move{}, fmt.Errorf("%w: %q", apperror.ErrMalformedMove, text)
	}

	// single digits guaranteed by the pattern
	row := int(matches[1][0] - '0')
	col := int(matches[2][0] - '0')

	return entity.Move{Row: row, Col: col}, nil
}

// ValidateMove checks that the move addresses an empty cell on the board.
func ValidateMove(board *entity.Board, move entity.Move) error {
	if !move.InRange() {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, move.Row, move.Col)
	}

	if board[move.Row][move.Col] != entity.EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, move.Row, move.Col)
	}

	return nil
}

// Winner returns the mark holding a complete line, or EmptyCell if
// there is none.
func Winner(board *entity.Board) string {
	for _, line := range entity.Lines {
		a := board[line[0].Row][line[0].Col]
		b := board[line[1].Row][line[1].Col]
		c := board[line[2].Row][line[2].Col]

		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

// HasWinner reports whether any of the 8 lines is uniformly one
// non-empty mark.
func HasWinner(board *entity.Board) bool {
	return Winner(board) != entity.EmptyCell
}

// IsDraw reports a full board with no winner. Callers must check
// HasWinner first: a full board containing a line is a win, not a draw.
func IsDraw(board *entity.Board) bool {
	return board.IsFull() && !HasWinner(board)
}

// CompletesLine reports whether placing mark at move would complete a
// line. The check runs on a copy of the board, so the caller's board
// is never touched during the hypothetical.
func CompletesLine(board *entity.Board, move entity.Move, mark string) bool {
	if board[move.Row][move.Col] != entity.EmptyCell {
		return false
	}

	hypothetical := *board
	hypothetical[move.Row][move.Col] = mark

	return HasWinner(&hypothetical)
}
