package blocks

// HandSize is the number of pieces offered after each refill.
const HandSize = 3

// Status is the session lifecycle state.
type Status int

const (
	StatusActive Status = iota
	StatusGameOver
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Placement reports an accepted PlacePiece call.
type Placement struct {
	Piece    Piece
	Row      int
	Col      int
	Clear    ClearResult
	Award    Award
	Refilled bool // The hand was emptied and refilled
	GameOver bool // The placement ended the game
}

// Session owns the board, hand, score and streak of one game and is the only
// place they change. It is not safe for concurrent use.
type Session struct {
	board     Board
	pieces    []Piece
	score     int
	streak    int
	highScore int
	status    Status

	catalog  *Catalog
	policy   Policy
	handSize int
}

// Option configures a Session.
type Option func(*Session)

// WithPolicy overrides the scoring rules.
func WithPolicy(p Policy) Option {
	return func(s *Session) { s.policy = p }
}

// WithHandSize overrides the number of pieces dealt per refill.
func WithHandSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.handSize = n
		}
	}
}

// WithHighScore seeds the best score carried across resets.
func WithHighScore(score int) Option {
	return func(s *Session) { s.highScore = max(score, 0) }
}

// NewSession creates a fresh active session dealing pieces from catalog.
func NewSession(catalog *Catalog, opts ...Option) *Session {
	s := &Session{
		catalog:  catalog,
		policy:   DefaultPolicy(),
		handSize: HandSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset starts a new game: empty board, zero score and streak, a fresh hand.
// The high score is kept.
func (s *Session) Reset() {
	s.board = Board{}
	s.score = 0
	s.streak = 0
	s.status = StatusActive
	s.pieces = s.catalog.Generate(s.handSize)
}

// SeedHighScore raises the high score to score if it is higher, typically
// with a best score loaded from storage.
func (s *Session) SeedHighScore(score int) {
	s.highScore = max(s.highScore, score)
}

// ClearHighScore forgets the best score.
func (s *Session) ClearHighScore() {
	s.highScore = 0
}

// PlacePiece places the hand piece at index with its top-left anchor at
// (row, col). It returns false and leaves the session untouched when the
// game is over, the index is out of range, or the piece does not fit.
func (s *Session) PlacePiece(index, row, col int) (Placement, bool) {
	if s.status != StatusActive {
		return Placement{}, false
	}
	if index < 0 || index >= len(s.pieces) {
		return Placement{}, false
	}
	piece := s.pieces[index]
	if !CanPlace(s.board, piece, row, col) {
		return Placement{}, false
	}

	board, cleared := ClearLines(Place(s.board, piece, row, col))
	award := s.policy.Score(piece, cleared.Lines, cleared.Intersections, s.streak)

	s.board = board
	s.score += award.Points
	s.streak = award.Streak
	s.highScore = max(s.highScore, s.score)

	s.pieces = append(s.pieces[:index:index], s.pieces[index+1:]...)
	refilled := false
	if len(s.pieces) == 0 {
		s.pieces = s.catalog.Generate(s.handSize)
		refilled = true
	}

	if IsGameOver(s.board, s.pieces) {
		s.status = StatusGameOver
		s.highScore = max(s.highScore, s.score)
	}

	return Placement{
		Piece:    piece,
		Row:      row,
		Col:      col,
		Clear:    cleared,
		Award:    award,
		Refilled: refilled,
		GameOver: s.status == StatusGameOver,
	}, true
}

// Board returns a copy of the board.
func (s *Session) Board() Board { return s.board }

// Pieces returns a copy of the current hand.
func (s *Session) Pieces() []Piece { return clonePieces(s.pieces) }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Streak returns the number of consecutive clearing placements.
func (s *Session) Streak() int { return s.streak }

// HighScore returns the best score seen by this session.
func (s *Session) HighScore() int { return s.highScore }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// GameOver returns true once no hand piece fits.
func (s *Session) GameOver() bool { return s.status == StatusGameOver }

// Policy returns the scoring rules in use.
func (s *Session) Policy() Policy { return s.policy }

func clonePieces(pieces []Piece) []Piece {
	out := make([]Piece, len(pieces))
	for i, p := range pieces {
		out[i] = p.Clone()
	}
	return out
}
