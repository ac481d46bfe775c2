// blocks is an 8x8 block puzzle for the terminal.
//
// Usage:
//
//	blocks play              - Play, resuming the saved game if there is one
//	blocks menu              - Start the menu (continue, new game, scores)
//	blocks serve             - Start SSH server for remote play
//	blocks scores            - Show high scores
//	blocks config            - Print the effective configuration
//	blocks list              - List available games
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--seed <value>     - Set RNG seed for reproducible piece sequences
//	--db <path>        - Set database path (default: ~/.blocks/scores.db)
//	--config <path>    - Load a custom YAML config
//	--player <name>    - Name of the saved game slot (default: $USER)
//	--log-file <path>  - Write a debug log
//
// Defaults for --db, --config, --player and --log-file may also come from
// BLOCKS_DB, BLOCKS_CONFIG, BLOCKS_PLAYER and BLOCKS_LOG, read from the
// environment or a .env file in the working directory.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagPlayer  string
	flagLogFile string
)

// logger is configured by the root command before any subcommand runs.
var logger = log.New(io.Discard)

var logFile *os.File

func main() {
	// A missing .env file is the common case.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Block Puzzle - fit pieces on an 8x8 board and clear lines",
	Long: `Block Puzzle is a terminal game: drop pieces from a hand of three onto
an 8x8 board. Full rows and columns clear. The game ends when no piece in
the hand fits anywhere.

Available commands:
  play     - Play directly, resuming a saved game
  menu     - Menu with continue, new game and high scores
  serve    - Start SSH server for remote play
  scores   - View or reset high scores
  config   - Print the effective configuration

Examples:
  blocks play
  blocks play --new --seed 42
  blocks menu
  blocks serve --ssh :2222
  blocks scores`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blocks/scores.db", "Path to scores database [BLOCKS_DB]")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML [BLOCKS_CONFIG]")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for saved games and scores [BLOCKS_PLAYER]")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write a debug log to this file [BLOCKS_LOG]")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(listCmd)
}

// setup applies environment defaults, opens the log and installs the game
// configuration.
func setup(cmd *cobra.Command, _ []string) error {
	envDefault(cmd, "db", "BLOCKS_DB", &flagDBPath)
	envDefault(cmd, "config", "BLOCKS_CONFIG", &flagConfig)
	envDefault(cmd, "player", "BLOCKS_PLAYER", &flagPlayer)
	envDefault(cmd, "log-file", "BLOCKS_LOG", &flagLogFile)
	if flagPlayer == "" {
		flagPlayer = os.Getenv("USER")
	}

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}

	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "blocks",
			Level:           log.DebugLevel,
		})
	}

	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return err
	}
	if err := blocks.SetConfig(cfg); err != nil {
		return err
	}
	logger.Debug("config loaded", "path", flagConfig, "hand_size", cfg.Pieces.HandSize, "templates", len(cfg.Pieces.Templates))

	return nil
}

// envDefault fills *target from the environment unless the flag was given.
func envDefault(cmd *cobra.Command, flag, env string, target *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v, ok := os.LookupEnv(env); ok && v != "" {
		*target = v
	}
}

// runtimeConfig builds the game config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
