// Package blocks implements an 8x8 block-placement puzzle: pieces are placed
// on the board, full rows and columns are cleared for points, and the game
// ends when none of the offered pieces fits anywhere.
package blocks

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BoardSize is the board dimension (the board is always BoardSize x BoardSize).
const BoardSize = 8

// Color is the tag stored in a board cell. The zero value is an empty cell.
type Color uint8

const (
	Empty Color = iota
	Red
	Blue
	Green
	Yellow
	Purple
	Orange
	Cyan
)

// Palette lists the colors a generated piece can take, in catalog order.
var Palette = []Color{Red, Blue, Green, Yellow, Purple, Orange, Cyan}

var colorNames = map[Color]string{
	Empty:  "",
	Red:    "red",
	Blue:   "blue",
	Green:  "green",
	Yellow: "yellow",
	Purple: "purple",
	Orange: "orange",
	Cyan:   "cyan",
}

// String returns the lowercase color name, or "empty" for an empty cell.
func (c Color) String() string {
	if c == Empty {
		return "empty"
	}
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor converts a color name to a Color. The empty string maps to Empty.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "empty" {
		return Empty, true
	}
	for c, name := range colorNames {
		if name == s {
			return c, true
		}
	}
	return Empty, false
}

// MarshalText encodes the color by name; empty cells encode as "".
func (c Color) MarshalText() ([]byte, error) {
	name, ok := colorNames[c]
	if !ok {
		return nil, fmt.Errorf("blocks: invalid color %d", c)
	}
	return []byte(name), nil
}

// UnmarshalText decodes a color name produced by MarshalText.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("blocks: unknown color %q", string(text))
	}
	*c = parsed
	return nil
}

// Board is the grid of cells indexed as board[row][col].
// It is a value type: assigning a Board copies every cell.
type Board [BoardSize][BoardSize]Color

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Occupied returns the number of non-empty cells.
func (b Board) Occupied() int {
	n := 0
	for row := range BoardSize {
		for col := range BoardSize {
			if b[row][col] != Empty {
				n++
			}
		}
	}
	return n
}

// IsEmpty returns true if no cell is occupied.
func (b Board) IsEmpty() bool {
	return b.Occupied() == 0
}

// MarshalJSON encodes the board as rows of color names.
func (b Board) MarshalJSON() ([]byte, error) {
	rows := make([][]Color, BoardSize)
	for row := range BoardSize {
		rows[row] = b[row][:]
	}
	return json.Marshal(rows)
}

// UnmarshalJSON decodes rows of color names and rejects any shape other
// than BoardSize x BoardSize.
func (b *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Color
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	if len(rows) != BoardSize {
		return fmt.Errorf("blocks: board has %d rows, want %d", len(rows), BoardSize)
	}
	var out Board
	for row, cells := range rows {
		if len(cells) != BoardSize {
			return fmt.Errorf("blocks: board row %d has %d cells, want %d", row, len(cells), BoardSize)
		}
		copy(out[row][:], cells)
	}
	*b = out
	return nil
}
