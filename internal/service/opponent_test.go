package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridrush/tictactoe-agent/internal/apperror"
	"github.com/gridrush/tictactoe-agent/internal/entity"
)

func TestOpponentService_SelectMove(t *testing.T) {
	opponent := NewOpponentService()

	t.Run("takes the center on an empty board", func(t *testing.T) {
		var board entity.Board

		move, err := opponent.SelectMove(&board)

		require.NoError(t, err)
		require.Equal(t, entity.Move{Row: 1, Col: 1}, move)
	})

	t.Run("is deterministic for the same board", func(t *testing.T) {
		board := entity.Board{
			{"X", "", ""},
			{"", "O", ""},
			{"", "", "X"},
		}

		first, err := opponent.SelectMove(&board)
		require.NoError(t, err)

		second, err := opponent.SelectMove(&board)
		require.NoError(t, err)

		require.Equal(t, first, second)
	})

	t.Run("wins when a winning cell exists", func(t *testing.T) {
		// O can complete row 0 at (0, 2)
		board := entity.Board{
			{"O", "O", ""},
			{"X", "X", ""},
			{"", "", ""},
		}

		move, err := opponent.SelectMove(&board)

		require.NoError(t, err)
		require.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("prefers winning over blocking", func(t *testing.T) {
		// both O (row 0) and X (row 1) are one move from a line
		board := entity.Board{
			{"O", "O", ""},
			{"X", "X", ""},
			{"", "", ""},
		}

		move, err := opponent.SelectMove(&board)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move, "expected the winning cell, not the block at (1, 2)")
	})

	t.Run("blocks the human's winning cell", func(t *testing.T) {
		board := entity.Board{
			{"X", "X", ""},
			{"", "O", ""},
			{"", "", ""},
		}

		move, err := opponent.SelectMove(&board)

		require.NoError(t, err)
		require.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("takes the first empty corner when the center is gone", func(t *testing.T) {
		board := entity.Board{
			{"O", "", ""},
			{"", "X", ""},
			{"", "", ""},
		}

		move, err := opponent.SelectMove(&board)

		require.NoError(t, err)
		require.Equal(t, entity.Move{Row: 0, Col: 2}, move, "corners are scanned (0,0), (0,2), (2,0), (2,2)")
	})

	t.Run("fails on a full board", func(t *testing.T) {
		board := entity.Board{
			{"X", "O", "X"},
			{"X", "O", "O"},
			{"O", "X", "X"},
		}

		_, err := opponent.SelectMove(&board)

		require.ErrorIs(t, err, apperror.ErrNoLegalMove)
	})
}
