package blocks

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(seed int64) *Catalog {
	return NewDefaultCatalog(rand.New(rand.NewSource(seed)))
}

func restore(t *testing.T, st State, opts ...Option) *Session {
	t.Helper()
	s, err := RestoreSession(st, testCatalog(1), opts...)
	require.NoError(t, err)
	return s
}

// staircase leaves two holes in every row and column, arranged so that only
// single cells and horizontal or vertical dominoes fit.
func staircase() Board {
	b := fullBoard(Red)
	for i := range BoardSize {
		b[i][i] = Empty
		b[i][(i+1)%BoardSize] = Empty
	}
	return b
}

func TestNewSession(t *testing.T) {
	s := NewSession(testCatalog(1))

	assert.True(t, s.Board().IsEmpty())
	assert.Len(t, s.Pieces(), HandSize)
	assert.Zero(t, s.Score())
	assert.Zero(t, s.Streak())
	assert.Zero(t, s.HighScore())
	assert.Equal(t, StatusActive, s.Status())
	assert.False(t, s.GameOver())
}

func TestNewSessionOptions(t *testing.T) {
	pol := DefaultPolicy()
	pol.PointsPerBlock = 1

	s := NewSession(testCatalog(1), WithHandSize(5), WithHighScore(900), WithPolicy(pol))
	assert.Len(t, s.Pieces(), 5)
	assert.Equal(t, 900, s.HighScore())
	assert.Equal(t, pol, s.Policy())

	s = NewSession(testCatalog(1), WithHandSize(0), WithHighScore(-5))
	assert.Len(t, s.Pieces(), HandSize)
	assert.Zero(t, s.HighScore())
}

func TestPlaceSingleOnEmptyBoard(t *testing.T) {
	s := restore(t, State{Pieces: []Piece{single(Blue), domino(Red), square(Green)}})

	res, ok := s.PlacePiece(0, 0, 0)
	require.True(t, ok)

	assert.Equal(t, 10, s.Score())
	assert.Equal(t, Blue, s.Board()[0][0])
	assert.Equal(t, 0, s.Streak())
	assert.False(t, s.GameOver())
	assert.Equal(t, 10, s.HighScore())

	assert.Equal(t, 10, res.Award.Points)
	assert.Zero(t, res.Clear.Lines)
	assert.False(t, res.Refilled)
	assert.Equal(t, []Piece{domino(Red), square(Green)}, s.Pieces())
}

func TestPlacePieceRejected(t *testing.T) {
	var b Board
	b[4][4] = Yellow
	st := State{Board: b, Pieces: []Piece{single(Blue), domino(Red)}, Score: 30, Streak: 1}

	tests := []struct {
		name     string
		index    int
		row, col int
	}{
		{"negative index", -1, 0, 0},
		{"index past end", 2, 0, 0},
		{"out of bounds", 1, 0, BoardSize - 1},
		{"negative anchor", 0, -1, 0},
		{"occupied", 0, 4, 4},
		{"partial overlap", 1, 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := restore(t, st)
			before := s.State()

			_, ok := s.PlacePiece(tt.index, tt.row, tt.col)
			assert.False(t, ok)
			assert.Equal(t, before, s.State())
		})
	}
}

func TestPlacePieceRefillsWhenHandEmpties(t *testing.T) {
	s := restore(t, State{Pieces: []Piece{single(Blue)}})

	res, ok := s.PlacePiece(0, 3, 3)
	require.True(t, ok)
	assert.True(t, res.Refilled)

	pieces := s.Pieces()
	require.Len(t, pieces, HandSize)
	for _, p := range pieces {
		assert.NoError(t, p.Validate())
	}
}

func TestPlacePieceLineClearAndStreak(t *testing.T) {
	var b Board
	for col := range BoardSize - 1 {
		b[0][col] = Red
		b[1][col] = Red
	}
	s := restore(t, State{Board: b, Pieces: []Piece{single(Blue), single(Green), square(Cyan)}})

	res, ok := s.PlacePiece(0, 0, BoardSize-1)
	require.True(t, ok)
	assert.Equal(t, 1, res.Clear.Lines)
	assert.Equal(t, 110, s.Score())
	assert.Equal(t, 1, s.Streak())
	for col := range BoardSize {
		assert.Equal(t, Empty, s.Board()[0][col])
	}

	res, ok = s.PlacePiece(0, 1, BoardSize-1)
	require.True(t, ok)
	assert.Equal(t, 1, res.Clear.Lines)
	assert.Equal(t, 2, s.Streak())
	assert.Equal(t, 110+120, s.Score())
	assert.True(t, s.Board().IsEmpty())

	res, ok = s.PlacePiece(0, 5, 5)
	require.True(t, ok)
	assert.Zero(t, res.Clear.Lines)
	assert.Zero(t, s.Streak())
	assert.Equal(t, 230+40, s.Score())
}

func TestPlacePieceIntersection(t *testing.T) {
	var b Board
	for i := range BoardSize {
		if i != 3 {
			b[3][i] = Red
			b[i][3] = Red
		}
	}
	s := restore(t, State{Board: b, Pieces: []Piece{single(Blue), square(Green)}})

	res, ok := s.PlacePiece(0, 3, 3)
	require.True(t, ok)
	assert.Equal(t, 2, res.Clear.Lines)
	assert.Equal(t, 1, res.Clear.Intersections)
	assert.Equal(t, 2, s.Streak())
	assert.Equal(t, 285, s.Score())
	assert.True(t, s.Board().IsEmpty())
}

func TestPlacePieceEndsGame(t *testing.T) {
	s := restore(t, State{
		Board:     staircase(),
		Pieces:    []Piece{single(Blue), square(Green)},
		Score:     400,
		HighScore: 300,
	})
	require.False(t, s.GameOver())

	res, ok := s.PlacePiece(0, 0, 0)
	require.True(t, ok)
	assert.Zero(t, res.Clear.Lines)
	assert.True(t, res.GameOver)
	assert.True(t, s.GameOver())
	assert.Equal(t, StatusGameOver, s.Status())
	assert.Equal(t, 410, s.HighScore())

	before := s.State()
	_, ok = s.PlacePiece(0, 7, 0)
	assert.False(t, ok, "no placement is accepted after game over")
	assert.Equal(t, before, s.State())
}

func TestReset(t *testing.T) {
	s := restore(t, State{
		Board:  staircase(),
		Pieces: []Piece{single(Blue), square(Green)},
		Score:  400,
		Streak: 3,
	})
	_, ok := s.PlacePiece(0, 0, 0)
	require.True(t, ok)
	require.True(t, s.GameOver())

	for range 2 {
		s.Reset()
		assert.True(t, s.Board().IsEmpty())
		assert.Zero(t, s.Score())
		assert.Zero(t, s.Streak())
		assert.Len(t, s.Pieces(), HandSize)
		assert.Equal(t, StatusActive, s.Status())
		assert.Equal(t, 410, s.HighScore(), "high score survives reset")
	}
}

func TestHighScore(t *testing.T) {
	s := NewSession(testCatalog(1), WithHighScore(50))

	s.SeedHighScore(20)
	assert.Equal(t, 50, s.HighScore(), "seeding never lowers")

	s.SeedHighScore(75)
	assert.Equal(t, 75, s.HighScore())

	s.ClearHighScore()
	assert.Zero(t, s.HighScore())
}

func TestPiecesReturnsCopy(t *testing.T) {
	s := restore(t, State{Pieces: []Piece{single(Blue)}})

	pieces := s.Pieces()
	pieces[0].Blocks[0] = Offset{Row: 5, Col: 5}
	pieces[0].Color = Red

	assert.Equal(t, []Piece{single(Blue)}, s.Pieces())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "active", StatusActive.String())
	assert.Equal(t, "game_over", StatusGameOver.String())
	assert.Equal(t, "unknown", Status(9).String())
}
