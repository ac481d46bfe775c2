package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file should be created in nested directory")
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.blocks/scores.db")
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(home, ".blocks", "scores.db"))
	assert.NoError(t, err)
}

func TestStoreSaveAndTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		player string
		score  int
	}{
		{"alice", 100},
		{"bob", 50},
		{"alice", 200},
		{"carol", 100},
	} {
		_, err := store.SaveScore("blocks", s.player, s.score)
		require.NoError(t, err)
	}
	_, err := store.SaveScore("other", "alice", 999)
	require.NoError(t, err)

	scores, err := store.TopScores("blocks", 10)
	require.NoError(t, err)
	require.Len(t, scores, 4)

	assert.Equal(t, 200, scores[0].Score)
	assert.Equal(t, "alice", scores[1].Player, "ties keep insertion order")
	assert.Equal(t, "carol", scores[2].Player)
	assert.Equal(t, 50, scores[3].Score)
	assert.False(t, scores[0].CreatedAt.IsZero())

	top, err := store.TopScores("blocks", 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blocks")
	require.NoError(t, err)
	assert.Zero(t, high)

	store.SaveScore("blocks", "", 100)
	store.SaveScore("blocks", "", 300)
	store.SaveScore("other", "", 500)

	high, err = store.HighScore("blocks")
	require.NoError(t, err)
	assert.Equal(t, 300, high)

	require.NoError(t, store.ClearScores("blocks"))

	high, err = store.HighScore("blocks")
	require.NoError(t, err)
	assert.Zero(t, high)

	other, err := store.TopScores("other", 10)
	require.NoError(t, err)
	assert.Len(t, other, 1, "clearing one game leaves others alone")
}

func TestStoreSessions(t *testing.T) {
	store := openTestStore(t)

	_, err := store.LoadSession("alice", "blocks")
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.SaveSession("alice", "blocks", []byte(`{"score":10}`)))
	require.NoError(t, store.SaveSession("bob", "blocks", []byte(`{"score":20}`)))

	data, err := store.LoadSession("alice", "blocks")
	require.NoError(t, err)
	assert.Equal(t, `{"score":10}`, string(data))

	require.NoError(t, store.SaveSession("alice", "blocks", []byte(`{"score":30}`)))
	data, err = store.LoadSession("alice", "blocks")
	require.NoError(t, err)
	assert.Equal(t, `{"score":30}`, string(data), "save replaces")

	sessions, err := store.ListSessions("blocks")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "alice", sessions[0].Player)
	assert.Equal(t, "bob", sessions[1].Player)

	require.NoError(t, store.DeleteSession("alice", "blocks"))
	require.NoError(t, store.DeleteSession("alice", "blocks"))
	_, err = store.LoadSession("alice", "blocks")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = store.LoadSession("bob", "blocks")
	assert.NoError(t, err)
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("blocks")
	require.NoError(t, err)
	assert.Zero(t, stats.GamesCount)
	assert.True(t, stats.LastPlayed.IsZero())

	store.SaveScore("blocks", "", 100)
	store.SaveScore("blocks", "", 300)

	stats, err = store.GetGameStats("blocks")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 300, stats.HighScore)
	assert.InDelta(t, 200.0, stats.AvgScore, 1e-9)
	assert.Equal(t, int64(400), stats.TotalScore)
	assert.False(t, stats.LastPlayed.IsZero())
}
