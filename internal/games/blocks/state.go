package blocks

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidState is returned when a snapshot cannot seed a session.
var ErrInvalidState = errors.New("blocks: invalid session state")

// State is a self-contained snapshot of a session. Restoring it yields a
// session that behaves identically for subsequent placements.
type State struct {
	Board     Board   `json:"board"`
	Pieces    []Piece `json:"pieces"`
	Score     int     `json:"score"`
	Streak    int     `json:"streak"`
	HighScore int     `json:"high_score"`
	GameOver  bool    `json:"game_over"`
}

// State returns a deep copy of the session's current state.
func (s *Session) State() State {
	return State{
		Board:     s.board,
		Pieces:    clonePieces(s.pieces),
		Score:     s.score,
		Streak:    s.streak,
		HighScore: s.highScore,
		GameOver:  s.status == StatusGameOver,
	}
}

// Validate checks that the snapshot could have been produced by a session
// dealing at most handSize pieces.
func (st State) Validate(handSize int) error {
	if st.Score < 0 || st.Streak < 0 || st.HighScore < 0 {
		return fmt.Errorf("%w: negative counter", ErrInvalidState)
	}
	if len(st.Pieces) == 0 {
		return fmt.Errorf("%w: no pieces", ErrInvalidState)
	}
	if len(st.Pieces) > handSize {
		return fmt.Errorf("%w: %d pieces, hand holds %d", ErrInvalidState, len(st.Pieces), handSize)
	}
	for i, p := range st.Pieces {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: piece %d: %v", ErrInvalidState, i, err)
		}
	}
	for row := range BoardSize {
		for col := range BoardSize {
			if _, ok := colorNames[st.Board[row][col]]; !ok {
				return fmt.Errorf("%w: cell (%d,%d) has invalid color", ErrInvalidState, row, col)
			}
		}
	}
	return nil
}

// RestoreSession seeds a session from a snapshot. A stored game-over flag is
// honoured, while a stored "not over" flag is rechecked against the board and
// pieces. The high score is raised to the score if it lags behind.
func RestoreSession(st State, catalog *Catalog, opts ...Option) (*Session, error) {
	s := &Session{
		catalog:  catalog,
		policy:   DefaultPolicy(),
		handSize: HandSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := st.Validate(s.handSize); err != nil {
		return nil, err
	}

	s.board = st.Board
	s.pieces = clonePieces(st.Pieces)
	s.score = st.Score
	s.streak = st.Streak
	s.highScore = max(s.highScore, st.HighScore, st.Score)
	s.status = StatusActive
	if st.GameOver || IsGameOver(s.board, s.pieces) {
		s.status = StatusGameOver
	}
	return s, nil
}

// MarshalState encodes a snapshot as JSON.
func MarshalState(st State) ([]byte, error) {
	return json.Marshal(st)
}

// UnmarshalState decodes a snapshot produced by MarshalState. Decoding
// failures are reported as ErrInvalidState.
func UnmarshalState(data []byte) (State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return st, nil
}
