// Package cli implements the meletao CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rcliao/meletao/internal/config"
	"github.com/rcliao/meletao/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
	verbose    bool

	cfg = config.Default()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "meletao",
	Short: "Journal, goals and gratitude on your own machine",
	Long: "A small reflection tool: journal entries, goals with progress, and gratitude notes. " +
		"Everything is stored locally in a single SQLite file.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $MELETAO_DB, config db, or ~/.meletao/meletao.db)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/meletao/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: json or text (default: config format or json)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostics to stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	path := configPath
	if path == "" {
		path = config.Path()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c
	slog.Debug("config loaded", "path", path, "db", cfg.DB, "timezone", cfg.Timezone)

	switch outputFormat() {
	case "json", "text":
	default:
		return fmt.Errorf("unknown format %q: want json or text", outputFormat())
	}
	return nil
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("MELETAO_DB"); env != "" {
		return env
	}
	if cfg.DB != "" {
		return cfg.DB
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".meletao", "meletao.db")
}

func outputFormat() string {
	if formatFlag != "" {
		return formatFlag
	}
	return cfg.Format
}

func openStore() (*store.Stores, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	path := getDBPath()
	slog.Debug("opening store", "path", path, "zone", loc.String())
	return store.Open(path, store.WithClock(func() time.Time { return time.Now().In(loc) }))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// readContent returns the positional args joined by spaces, or stdin when
// no args are given and stdin is not a terminal.
func readContent(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
