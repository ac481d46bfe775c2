package blocks

// CanPlace reports whether every block of p, anchored at (row, col), lands
// on an in-bounds empty cell.
func CanPlace(b Board, p Piece, row, col int) bool {
	for _, off := range p.Blocks {
		r, c := row+off.Row, col+off.Col
		if !InBounds(r, c) {
			return false
		}
		if b[r][c] != Empty {
			return false
		}
	}
	return true
}

// Place paints p onto the board at (row, col) and returns the new board.
// Callers must check CanPlace first; out-of-bounds blocks are skipped.
func Place(b Board, p Piece, row, col int) Board {
	for _, off := range p.Blocks {
		r, c := row+off.Row, col+off.Col
		if InBounds(r, c) {
			b[r][c] = p.Color
		}
	}
	return b
}

// ClearResult describes what a line clear removed.
type ClearResult struct {
	Lines         int      // Full rows plus full columns
	Intersections int      // Cells where a full row crosses a full column
	Rows          []int    // Indices of full rows
	Cols          []int    // Indices of full columns
	Cells         []Offset // Every emptied cell, each listed once
}

// ClearLines empties every full row and column of b.
//
// Rows are emptied first; while a full column is emptied, each of its cells
// that sits on an already-emptied full row counts as one intersection.
// A board with no full lines is returned unchanged.
func ClearLines(b Board) (Board, ClearResult) {
	var res ClearResult

	for row := range BoardSize {
		if rowFull(b, row) {
			res.Rows = append(res.Rows, row)
		}
	}
	for col := range BoardSize {
		if colFull(b, col) {
			res.Cols = append(res.Cols, col)
		}
	}
	res.Lines = len(res.Rows) + len(res.Cols)
	if res.Lines == 0 {
		return b, res
	}

	var clearedRow [BoardSize]bool
	for _, row := range res.Rows {
		clearedRow[row] = true
		for col := range BoardSize {
			b[row][col] = Empty
			res.Cells = append(res.Cells, Offset{Row: row, Col: col})
		}
	}
	for _, col := range res.Cols {
		for row := range BoardSize {
			if clearedRow[row] && b[row][col] == Empty {
				res.Intersections++
				continue
			}
			b[row][col] = Empty
			res.Cells = append(res.Cells, Offset{Row: row, Col: col})
		}
	}

	return b, res
}

func rowFull(b Board, row int) bool {
	for col := range BoardSize {
		if b[row][col] == Empty {
			return false
		}
	}
	return true
}

func colFull(b Board, col int) bool {
	for row := range BoardSize {
		if b[row][col] == Empty {
			return false
		}
	}
	return true
}

// IsGameOver returns true if no piece in pieces fits anywhere on the board.
// The check is vacuously true for an empty list; sessions always refill
// before asking.
func IsGameOver(b Board, pieces []Piece) bool {
	for _, p := range pieces {
		if CanPlaceAnywhere(b, p) {
			return false
		}
	}
	return true
}

// CanPlaceAnywhere returns true if p fits at some anchor on the board.
func CanPlaceAnywhere(b Board, p Piece) bool {
	for row := range BoardSize {
		for col := range BoardSize {
			if CanPlace(b, p, row, col) {
				return true
			}
		}
	}
	return false
}
