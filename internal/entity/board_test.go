package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridrush/tictactoe-agent/internal/apperror"
)

func TestBoard_Reset(t *testing.T) {
	// Given: a board with a few marks on it
	var board Board
	board.Set(0, 0, PlayerMark)
	board.Set(1, 1, OpponentMark)

	// When: the board is reset
	board.Reset()

	// Then: every cell is empty again
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			cell, err := board.At(row, col)
			require.NoError(t, err)
			require.Equal(t, EmptyCell, cell)
		}
	}
}

func TestBoard_At(t *testing.T) {
	t.Run("returns the mark at a cell", func(t *testing.T) {
		var board Board
		board.Set(2, 1, PlayerMark)

		cell, err := board.At(2, 1)

		require.NoError(t, err)
		require.Equal(t, PlayerMark, cell)
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		var board Board

		for _, move := range []Move{{Row: -1, Col: 0}, {Row: 0, Col: -1}, {Row: 3, Col: 0}, {Row: 0, Col: 3}} {
			_, err := board.At(move.Row, move.Col)
			assert.ErrorIs(t, err, apperror.ErrOutOfRange)
		}
	})
}

func TestBoard_IsFull(t *testing.T) {
	// Given: a board missing one mark
	var board Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			board.Set(row, col, PlayerMark)
		}
	}
	board.Set(2, 2, EmptyCell)

	// Then: the board is not full until the last cell is set
	require.False(t, board.IsFull())

	board.Set(2, 2, OpponentMark)
	require.True(t, board.IsFull())
}

func TestBoard_Render(t *testing.T) {
	// Given: a board with a few marks
	var board Board
	board.Set(0, 0, PlayerMark)
	board.Set(0, 2, OpponentMark)
	board.Set(1, 1, PlayerMark)
	board.Set(2, 2, OpponentMark)

	// When: the board is rendered
	rendered := board.Render()

	// Then: the grid shows headers, row prefixes, separators and the
	// placeholder glyph for empty cells
	expected := "    0   1   2\n" +
		" 0  X | . | O\n" +
		"   ---+---+---\n" +
		" 1  . | X | .\n" +
		"   ---+---+---\n" +
		" 2  . | . | O\n"

	require.Equal(t, expected, rendered)
}

func TestToggleMark(t *testing.T) {
	require.Equal(t, OpponentMark, ToggleMark(PlayerMark))
	require.Equal(t, PlayerMark, ToggleMark(OpponentMark))
}

func TestSession_StartGame(t *testing.T) {
	// Given: a session left over from a finished game
	session := NewSession("123")
	session.Board.Set(0, 0, PlayerMark)
	session.Status = StatusAwaitingFunding
	session.Winner = PlayerMark
	session.RewardRef = "tx-42"

	// When: a new game starts
	session.StartGame()

	// Then: the board, turn and dialogue state are reset
	expected := &Session{
		ID:     "123",
		Turn:   PlayerMark,
		Status: StatusOngoing,
	}

	require.Equal(t, expected, session)
}

func TestNewSession(t *testing.T) {
	session := NewSession("abc")

	require.Equal(t, "abc", session.ID)
	require.Equal(t, StatusIdle, session.Status)
	require.True(t, session.IsIdle())
}
