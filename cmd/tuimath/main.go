// Package main provides the CLI entrypoint for tuimath.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuimath/internal/config"
	"github.com/verte-zerg/tuimath/internal/game"
	"github.com/verte-zerg/tuimath/internal/model"
	"github.com/verte-zerg/tuimath/internal/scores"
	"github.com/verte-zerg/tuimath/internal/scoresui"
	"github.com/verte-zerg/tuimath/internal/store"
	"github.com/verte-zerg/tuimath/internal/synth"
	"github.com/verte-zerg/tuimath/internal/tui"
)

const defaultSparkWidth = 60

var (
	gameBubbles        int
	gameRounds         int
	gameRoundSeconds   int
	gamePenaltySeconds int
	gameSeed           int64

	scoresSince string
	scoresLast  int
	scoresPlain bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuimath",
		Short:         "Timed arithmetic ordering game for the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().IntVar(&gameBubbles, "bubbles", game.DefaultBubbles, "bubbles per round (1-9)")
	rootCmd.Flags().IntVar(&gameRounds, "rounds", game.DefaultRounds, "rounds per game")
	rootCmd.Flags().IntVar(&gameRoundSeconds, "round-seconds", game.DefaultRoundSeconds, "countdown per round")
	rootCmd.Flags().IntVar(&gamePenaltySeconds, "penalty-seconds", game.DefaultPenaltySeconds, "time lost per wrong pick")
	rootCmd.Flags().Int64Var(&gameSeed, "seed", 0, "fixed RNG seed (0 = random)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newScoresCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "bubbles", &gameBubbles, fileCfg.Game.Bubbles)
	applyIntConfig(cmd, "rounds", &gameRounds, fileCfg.Game.Rounds)
	applyIntConfig(cmd, "round-seconds", &gameRoundSeconds, fileCfg.Game.RoundSeconds)
	applyIntConfig(cmd, "penalty-seconds", &gamePenaltySeconds, fileCfg.Game.PenaltySeconds)
	applyInt64Config(cmd, "seed", &gameSeed, fileCfg.Game.Seed)

	cfg := model.Config{
		Bubbles:        gameBubbles,
		Rounds:         gameRounds,
		RoundSeconds:   gameRoundSeconds,
		PenaltySeconds: gamePenaltySeconds,
		Seed:           gameSeed,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	// A broken database must not block playing: the high score just
	// starts at 0 and the result is not recorded.
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("high scores unavailable: %v\n", err)
		st = nil
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	sy := synth.New()
	if cfg.Seed != 0 {
		sy = synth.NewSeeded(cfg.Seed)
	}
	sess := game.NewSession(cfg, sy)
	m := tui.NewModel(cfg, st, sess)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newScoresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show past game scores",
		RunE:  runScoresCmd,
	}
	cmd.Flags().StringVar(&scoresSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&scoresLast, "last", 0, "limit to last N games")
	cmd.Flags().BoolVar(&scoresPlain, "plain", false, "plain output instead of the interactive view")
	return cmd
}

func runScoresCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if scoresSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", scoresSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.ScoresConfig{Since: sinceTime, Last: scoresLast}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	games, err := st.ListGames(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to list games: %w", err)
	}

	if scoresPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return printScores(cmd, games, cfg)
	}

	ui := scoresui.NewModel(games, cfg)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run scores TUI: %w", err)
	}
	return nil
}

func printScores(cmd *cobra.Command, games []model.GameAggregate, cfg model.ScoresConfig) error {
	report := scores.BuildReport(games, cfg)
	out := cmd.OutOrStdout()
	if report.Games == 0 {
		_, err := fmt.Fprintln(out, "No games recorded yet.")
		return err
	}
	if cfg.Last > 0 && len(games) > cfg.Last {
		games = games[len(games)-cfg.Last:]
	}
	if _, err := fmt.Fprintf(out, "Best %d · Games %d · Average %.1f · Rounds won %.0f%%\n",
		report.Best, report.Games, report.AvgScore,
		scores.CompletionRate(report.RoundsCompleted, report.RoundsPlayed)*100); err != nil {
		return err
	}
	if spark := scores.Sparkline(report.Scores, sparkWidth()); spark != "" {
		if _, err := fmt.Fprintln(out, spark); err != nil {
			return err
		}
	}
	for _, line := range scores.FormatGames(games) {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

func sparkWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultSparkWidth
	}
	return width
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuimath configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# bubbles = %d          # Bubbles per round (1-9)
# rounds = %d          # Rounds per game
# round-seconds = %d   # Countdown per round
# penalty-seconds = %d  # Time lost per wrong pick
# seed = 12345          # Fixed RNG seed (0 = random)
`,
		game.DefaultBubbles,
		game.DefaultRounds,
		game.DefaultRoundSeconds,
		game.DefaultPenaltySeconds,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Bubbles < 1 || cfg.Bubbles > 9 {
		return fmt.Errorf("--bubbles must be between 1 and 9")
	}
	if cfg.Rounds <= 0 {
		return fmt.Errorf("--rounds must be > 0")
	}
	if cfg.RoundSeconds <= 0 {
		return fmt.Errorf("--round-seconds must be > 0")
	}
	if cfg.PenaltySeconds <= 0 {
		return fmt.Errorf("--penalty-seconds must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
