package blocks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = 12345
	g.Reset(cfg)
	return g
}

func press(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(GameID))

	g, err := registry.Create(GameID)
	require.NoError(t, err)
	assert.Equal(t, "Block Puzzle", g.Title())

	var _ registry.Persistent = g.(*Game)
	var _ registry.HighScorer = g.(*Game)
	var _ registry.Resizable = g.(*Game)
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t)

	st := g.State()
	assert.Zero(t, st.Score)
	assert.False(t, st.GameOver)
	assert.False(t, st.Paused)
	assert.Len(t, g.Session().Pieces(), HandSize)
	assert.True(t, g.showGrid)
}

func TestGameConfirmPlacesSelectedPiece(t *testing.T) {
	g := newTestGame(t)
	piece := g.Session().Pieces()[0]

	res := press(g, core.ActionConfirm)

	assert.True(t, res.Changed)
	require.NotEmpty(t, res.Events)
	assert.Equal(t, core.EventPlaced, res.Events[0].Kind)
	assert.Equal(t, 10*piece.Size(), res.Events[0].Value)
	assert.Equal(t, 10*piece.Size(), res.State.Score)
	assert.Equal(t, piece.Size(), g.Session().Board().Occupied())
	assert.Len(t, g.Session().Pieces(), HandSize-1)
}

func TestGameConfirmOnOccupiedIsIgnored(t *testing.T) {
	g := newTestGame(t)
	g.session = restore(t, State{Board: func() Board { var b Board; b[0][0] = Red; return b }(), Pieces: []Piece{single(Blue)}})

	res := press(g, core.ActionConfirm)
	assert.False(t, res.Changed)
	assert.Empty(t, res.Events)
	assert.Zero(t, g.State().Score)
}

func TestGameCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t)
	g.session = restore(t, State{Pieces: []Piece{domino(Red), square(Blue)}})
	g.resetCursor()

	for range 20 {
		press(g, core.ActionRight)
		press(g, core.ActionDown)
	}
	assert.Equal(t, BoardSize-1, g.cursorRow)
	assert.Equal(t, BoardSize-2, g.cursorCol)

	press(g, core.ActionNextPiece)
	assert.Equal(t, 1, g.selected)
	assert.Equal(t, BoardSize-2, g.cursorRow, "switching to a taller piece pulls the cursor up")

	press(g, core.ActionNextPiece)
	assert.Equal(t, 0, g.selected, "selection wraps")

	press(g, core.ActionPrevPiece)
	assert.Equal(t, 1, g.selected)

	press(g, core.ActionSelect3)
	assert.Equal(t, 1, g.selected, "selecting a missing slot is ignored")

	press(g, core.ActionSelect1)
	assert.Equal(t, 0, g.selected)

	for range 20 {
		press(g, core.ActionUp)
		press(g, core.ActionLeft)
	}
	assert.Zero(t, g.cursorRow)
	assert.Zero(t, g.cursorCol)
}

func TestGameLineClearEventsAndBanner(t *testing.T) {
	g := newTestGame(t)
	var b Board
	for col := range BoardSize - 1 {
		b[0][col] = Red
	}
	g.session = restore(t, State{Board: b, Pieces: []Piece{single(Blue), square(Green)}})
	g.cursorCol = BoardSize - 1

	res := press(g, core.ActionConfirm)
	require.True(t, res.Changed)
	assert.True(t, core.Has(res.Events, core.EventLinesCleared))
	assert.Equal(t, []string{"1 LINES!", "+110 PTS"}, g.banner)
	assert.Len(t, g.flash, BoardSize)

	for range g.cfg.Display.BannerTicks {
		press(g)
	}
	assert.Nil(t, g.banner)
	assert.Nil(t, g.flash)
}

func TestGameOverEventAndRestart(t *testing.T) {
	g := newTestGame(t)
	g.session = restore(t, State{Board: staircase(), Pieces: []Piece{single(Blue), square(Green)}, Score: 90})

	res := press(g, core.ActionConfirm)
	require.True(t, res.State.GameOver)
	assert.True(t, core.Has(res.Events, core.EventGameOver))
	assert.Equal(t, 100, res.State.HighScore)

	res = press(g, core.ActionConfirm)
	assert.False(t, res.Changed, "input is ignored after game over")

	res = press(g, core.ActionRestart)
	assert.True(t, res.Changed)
	assert.True(t, core.Has(res.Events, core.EventReset))
	assert.False(t, res.State.GameOver)
	assert.Zero(t, res.State.Score)
	assert.Equal(t, 100, res.State.HighScore)
}

func TestGamePauseBlocksInput(t *testing.T) {
	g := newTestGame(t)

	res := press(g, core.ActionPause)
	assert.True(t, res.State.Paused)

	res = press(g, core.ActionConfirm)
	assert.False(t, res.Changed)
	assert.True(t, g.Session().Board().IsEmpty())

	res = press(g, core.ActionPause)
	assert.False(t, res.State.Paused)
}

func TestGameToggleGrid(t *testing.T) {
	g := newTestGame(t)
	press(g, core.ActionToggleGrid)
	assert.False(t, g.showGrid)
	press(g, core.ActionToggleGrid)
	assert.True(t, g.showGrid)
}

func TestGameResizeKeepsProgress(t *testing.T) {
	g := newTestGame(t)
	press(g, core.ActionConfirm)
	score := g.State().Score

	g.Resize(20, 10)
	assert.True(t, g.State().Paused, "too small pauses")
	res := press(g, core.ActionConfirm)
	assert.False(t, res.Changed)

	g.Resize(100, 40)
	assert.False(t, g.State().Paused)
	assert.Equal(t, score, g.State().Score)

	g.Resize(minScreenW, minScreenH)
	assert.False(t, g.tooSmall, "the minimum size fits")
	g.Resize(minScreenW-1, minScreenH)
	assert.True(t, g.tooSmall)
	g.Resize(minScreenW, minScreenH-1)
	assert.True(t, g.tooSmall)
}

func TestGameSaveLoadState(t *testing.T) {
	g := newTestGame(t)
	press(g, core.ActionConfirm)
	want := g.Session().State()

	data, err := g.SaveState()
	require.NoError(t, err)

	other := newTestGame(t)
	require.NoError(t, other.LoadState(data))
	assert.Equal(t, want, other.Session().State())

	assert.ErrorIs(t, other.LoadState([]byte("not json")), ErrInvalidState)
	assert.Equal(t, want, other.Session().State(), "failed load keeps the session")
}

func TestGameLoadStateBeforeReset(t *testing.T) {
	assert.ErrorIs(t, New().LoadState([]byte("{}")), ErrInvalidState)
	_, err := New().SaveState()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestGameHighScore(t *testing.T) {
	g := newTestGame(t)
	g.SetHighScore(700)
	assert.Equal(t, 700, g.State().HighScore)

	g.Reset(core.DefaultConfig())
	assert.Equal(t, 700, g.State().HighScore, "reset keeps the best score")

	g.ClearHighScore()
	assert.Zero(t, g.State().HighScore)
}

func TestGameUsesConfig(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Pieces.HandSize = 2
	cfg.Display.ShowGrid = false
	require.NoError(t, SetConfig(cfg))
	t.Cleanup(func() { _ = SetConfig(config.DefaultBlocksConfig()) })

	g := newTestGame(t)
	assert.Len(t, g.Session().Pieces(), 2)
	assert.False(t, g.showGrid)
}

func TestSetConfigRejectsInvalid(t *testing.T) {
	cfg := config.DefaultBlocksConfig()
	cfg.Pieces.HandSize = 2
	require.NoError(t, SetConfig(cfg))
	t.Cleanup(func() { _ = SetConfig(config.DefaultBlocksConfig()) })

	bad := config.DefaultBlocksConfig()
	bad.Pieces.Palette = []string{"red", "mauve"}
	bad.Display.ShowGrid = false
	assert.Error(t, SetConfig(bad))

	g := newTestGame(t)
	assert.Len(t, g.Session().Pieces(), 2, "the previous config stays active")
	assert.True(t, g.showGrid)
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	press(g, core.ActionConfirm)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "BLOCK PUZZLE")
	assert.Contains(t, out, "Score: ")
	assert.Contains(t, out, "┼")
	assert.Contains(t, out, "█")

	g.Resize(20, 10)
	small := core.NewScreen(20, 10)
	g.Render(small)
	assert.True(t, strings.Contains(small.String(), "too small"))
}
