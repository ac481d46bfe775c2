package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// run executes the root command with fresh flag values and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, env := range []string{"BLOCKS_DB", "BLOCKS_CONFIG", "BLOCKS_PLAYER", "BLOCKS_LOG"} {
		t.Setenv(env, "")
	}

	flagConfig, flagPlayer, flagLogFile = "", "", ""
	flagDBPath = "~/.blocks/scores.db"
	flagClearScores, flagDefaultConfig = false, false
	flagScoresLimit = 10
	flagFPS = 30

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigDefault(t *testing.T) {
	out, err := run(t, "config", "--default")
	require.NoError(t, err)
	assert.Equal(t, string(config.GetDefaultYAML(blocks.GameID)), out)
}

func TestConfigEffective(t *testing.T) {
	out, err := run(t, "config")
	require.NoError(t, err)

	var cfg config.BlocksConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, config.DefaultBlocksConfig(), cfg)
}

func TestConfigRejectsMissingFile(t *testing.T) {
	_, err := run(t, "config", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	out, err := run(t, "scores", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No scores recorded yet.")

	store, err := storage.Open(dbPath)
	require.NoError(t, err)
	_, err = store.SaveScore(blocks.GameID, "alice", 120)
	require.NoError(t, err)
	_, err = store.SaveScore(blocks.GameID, "", 80)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err = run(t, "scores", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "High Scores - Block Puzzle")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Best: 120   Games: 2   Average: 100")

	out, err = run(t, "scores", "--db", dbPath, "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "High scores cleared.")

	out, err = run(t, "scores", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No scores recorded yet.")
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "blocks")
	assert.Contains(t, out, "Block Puzzle")
}

func TestRejectsBadFPS(t *testing.T) {
	_, err := run(t, "list", "--fps", "0")
	assert.ErrorContains(t, err, "--fps must be positive")
}
