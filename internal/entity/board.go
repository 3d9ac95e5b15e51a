package entity

import (
	"fmt"
	"strings"

	"github.com/gridrush/tictactoe-agent/internal/apperror"
)

const (
	// Size is the board dimension; only 3x3 boards are supported.
	Size = 3

	PlayerMark   = "X"
	OpponentMark = "O"
	MarkTie      = "-"

	EmptyCell = ""

	emptyGlyph = "."
)

// Lines enumerates the 8 winning triples: 3 rows, 3 columns, 2 diagonals.
var Lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Move is a single cell coordinate. It is transient and never persisted.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InRange reports whether the move addresses a cell on the board.
func (that Move) InRange() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// Board is the 3x3 grid of cell marks. A cell holds PlayerMark,
// OpponentMark or EmptyCell; a non-empty cell never goes back to empty
// except through Reset.
type Board [Size][Size]string

// Reset fills all 9 cells with EmptyCell.
func (that *Board) Reset() {
	for row := range that {
		for col := range that[row] {
			that[row][col] = EmptyCell
		}
	}
}

// At returns the mark at the given cell.
func (that *Board) At(row, col int) (string, error) {
	if !(Move{Row: row, Col: col}).InRange() {
		return EmptyCell, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, col)
	}

	return that[row][col], nil
}

// Set overwrites a cell unconditionally. Callers are responsible for
// validating the move first.
func (that *Board) Set(row, col int, mark string) {
	that[row][col] = mark
}

// IsFull reports whether all 9 cells are occupied.
func (that *Board) IsFull() bool {
	for row := range that {
		for col := range that[row] {
			if that[row][col] == EmptyCell {
				return false
			}
		}
	}

	return true
}

// Render produces the fixed-width textual grid with column headers,
// row index prefixes and two separator rows. Empty cells are shown
// with a placeholder glyph.
func (that *Board) Render() string {
	var sb strings.Builder

	sb.WriteString("    0   1   2\n")

	for row := 0; row < Size; row++ {
		cells := make([]string, 0, Size)
		for col := 0; col < Size; col++ {
			cell := that[row][col]
			if cell == EmptyCell {
				cell = emptyGlyph
			}
			cells = append(cells, cell)
		}

		sb.WriteString(fmt.Sprintf(" %d  %s\n", row, strings.Join(cells, " | ")))

		if row < Size-1 {
			sb.WriteString("   ---+---+---\n")
		}
	}

	return sb.String()
}

func ToggleMark(currentMark string) string {
	if currentMark == PlayerMark {
		return OpponentMark
	}
	return PlayerMark
}
