package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridrush/tictactoe-agent/internal/apperror"
	"github.com/gridrush/tictactoe-agent/internal/entity"
)

func TestParseMove(t *testing.T) {
	t.Run("accepted formats", func(t *testing.T) {
		cases := map[string]entity.Move{
			"(0, 2)":      {Row: 0, Col: 2},
			"(1,1)":       {Row: 1, Col: 1},
			"2,0":         {Row: 2, Col: 0},
			"  (2 , 1 ) ": {Row: 2, Col: 1},
			" 0,0":        {Row: 0, Col: 0},
		}

		for text, expected := range cases {
			move, err := ParseMove(text)
			require.NoError(t, err, "text %q", text)
			require.Equal(t, expected, move, "text %q", text)
		}
	})

	t.Run("rejected formats", func(t *testing.T) {
		for _, text := range []string{"a,b", "", "0", "(0)", "0;1", "0,12", "10,0", "(0, 1) x"} {
			_, err := ParseMove(text)
			assert.ErrorIs(t, err, apperror.ErrMalformedMove, "text %q", text)
		}
	})

	t.Run("single digits outside the board still parse", func(t *testing.T) {
		// range is the validator's job, not the parser's
		move, err := ParseMove("5,5")

		require.NoError(t, err)
		require.Equal(t, entity.Move{Row: 5, Col: 5}, move)
	})
}

func TestValidateMove(t *testing.T) {
	t.Run("legal move on an empty cell", func(t *testing.T) {
		var board entity.Board

		err := ValidateMove(&board, entity.Move{Row: 1, Col: 2})

		require.NoError(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		var board entity.Board

		for _, move := range []entity.Move{{Row: 5, Col: 5}, {Row: -1, Col: 0}, {Row: 0, Col: 3}} {
			err := ValidateMove(&board, move)
			assert.ErrorIs(t, err, apperror.ErrOutOfRange, "move %v", move)
		}
	})

	t.Run("occupied cell", func(t *testing.T) {
		var board entity.Board
		board.Set(1, 1, entity.OpponentMark)

		err := ValidateMove(&board, entity.Move{Row: 1, Col: 1})

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})
}

func TestHasWinner(t *testing.T) {
	t.Run("detects every line", func(t *testing.T) {
		for _, line := range entity.Lines {
			var board entity.Board
			for _, move := range line {
				board.Set(move.Row, move.Col, entity.PlayerMark)
			}

			assert.True(t, HasWinner(&board), "line %v", line)
			assert.Equal(t, entity.PlayerMark, Winner(&board))
		}
	})

	t.Run("empty board has no winner", func(t *testing.T) {
		var board entity.Board

		require.False(t, HasWinner(&board))
		require.Equal(t, entity.EmptyCell, Winner(&board))
	})

	t.Run("board without a line has no winner", func(t *testing.T) {
		// X O X / X O O / O X X
		board := entity.Board{
			{"X", "O", "X"},
			{"X", "O", "O"},
			{"O", "X", "X"},
		}

		require.False(t, HasWinner(&board))
	})
}

func TestIsDraw(t *testing.T) {
	t.Run("full board without a line is a draw", func(t *testing.T) {
		board := entity.Board{
			{"X", "O", "X"},
			{"X", "O", "O"},
			{"O", "X", "X"},
		}

		require.True(t, IsDraw(&board))
	})

	t.Run("full board with a line is a win, not a draw", func(t *testing.T) {
		board := entity.Board{
			{"X", "X", "X"},
			{"O", "O", "X"},
			{"X", "O", "O"},
		}

		require.True(t, HasWinner(&board))
		require.False(t, IsDraw(&board))
	})

	t.Run("board with empty cells is not a draw", func(t *testing.T) {
		var board entity.Board
		board.Set(0, 0, entity.PlayerMark)

		require.False(t, IsDraw(&board))
	})
}

func TestCompletesLine(t *testing.T) {
	t.Run("detects a completing move", func(t *testing.T) {
		var board entity.Board
		board.Set(0, 0, entity.OpponentMark)
		board.Set(0, 1, entity.OpponentMark)

		require.True(t, CompletesLine(&board, entity.Move{Row: 0, Col: 2}, entity.OpponentMark))
	})

	t.Run("occupied target never completes", func(t *testing.T) {
		var board entity.Board
		board.Set(0, 0, entity.OpponentMark)
		board.Set(0, 1, entity.OpponentMark)
		board.Set(0, 2, entity.PlayerMark)

		require.False(t, CompletesLine(&board, entity.Move{Row: 0, Col: 2}, entity.OpponentMark))
	})

	t.Run("does not mutate the board", func(t *testing.T) {
		var board entity.Board
		board.Set(1, 1, entity.PlayerMark)
		snapshot := board

		CompletesLine(&board, entity.Move{Row: 0, Col: 0}, entity.PlayerMark)

		require.Equal(t, snapshot, board)
	})
}
