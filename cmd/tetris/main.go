// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play              - Play a game directly
//	tetris menu              - Start the menu (play, high scores, quit)
//	tetris serve             - Start SSH server for remote play
//	tetris scores            - Show high scores
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.tetris/scores.db)
//	--config <path>      - Load a custom tetris.yaml
//	--log-level <level>  - debug, info, warn or error
//
// Defaults for these flags can also be set through TETRIS_* environment
// variables or a .env file in the working directory.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	// dotenvErr holds a .env load failure other than a missing file. It is
	// reported once the logger exists.
	dotenvErr error
)

func main() {
	dotenvErr = loadDotenv()
	registerFlags()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - Stack falling blocks in your terminal",
	Long: `Tetris is a terminal falling-block puzzle game with a local
high-score table and an SSH server for remote play.

Available commands:
  play     - Play a game directly
  menu     - Interactive menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  tetris play
  tetris play --seed 42 --config ./my-tetris.yaml
  tetris menu
  tetris serve --ssh :2222
  tetris scores`,
	SilenceUsage: true,
}

func registerFlags() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", envInt("TETRIS_FPS", 60), "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envString("TETRIS_DB", "~/.tetris/scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", envString("TETRIS_CONFIG", ""), "Path to custom tetris config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", envString("TETRIS_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", envString("TETRIS_SSH_ADDR", ":23234"), "SSH server address (host:port)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadDotenv loads .env from the working directory. A missing file is the
// common case and not an error.
func loadDotenv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}
	return nil
}

func envString(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// loadGameConfig loads the tetris config and returns a factory that builds
// a fresh game from it.
func loadGameConfig() (func() tui.Game, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return nil, err
	}
	return func() tui.Game { return tetris.NewWithConfig(cfg) }, nil
}

// newLogger builds the application logger. While the terminal UI owns the
// screen, logs go to ~/.tetris/tetris.log; the returned closer releases it.
func newLogger(toFile bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	if toFile {
		path, err := config.ExpandHome(filepath.Join("~", config.AppDir, "tetris.log"))
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "tetris",
	})
	if dotenvErr != nil {
		logger.Warn("environment defaults not applied", "error", dotenvErr)
	}
	return logger, closer, nil
}
