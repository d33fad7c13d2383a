// Package main provides the CLI entrypoint for wlactions.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wlactions/internal/buildinfo"
	"github.com/verte-zerg/wlactions/internal/config"
	"github.com/verte-zerg/wlactions/internal/model"
	"github.com/verte-zerg/wlactions/internal/session"
)

const (
	defaultRefreshMs  = 100
	defaultDebounceMs = 100
)

var (
	runQuiet      bool
	runRefreshMs  int
	runDebounceMs int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wlactions [flags] -- <program> [args...]",
		Short: "Count input actions for a wrapped Wayland application",
		Long: "wlactions launches a program behind a transparent Wayland proxy and counts\n" +
			"its input actions: key presses, button clicks, scroll steps, and touch taps.\n" +
			"The event stream is forwarded unchanged; press Ctrl+C for the final summary.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRootCmd,
	}

	rootCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "suppress live output, only show summary on exit")
	rootCmd.Flags().IntVar(&runRefreshMs, "refresh-ms", defaultRefreshMs, "live display refresh interval in milliseconds")
	rootCmd.Flags().IntVar(&runDebounceMs, "debounce-ms", defaultDebounceMs, "continuous-scroll debounce window in milliseconds")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func runRootCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyBoolConfig(cmd, "quiet", &runQuiet, fileCfg.Display.Quiet)
	applyIntConfig(cmd, "refresh-ms", &runRefreshMs, fileCfg.Display.RefreshMs)
	applyIntConfig(cmd, "debounce-ms", &runDebounceMs, fileCfg.Scroll.DebounceMs)

	if runRefreshMs <= 0 {
		return fmt.Errorf("--refresh-ms must be > 0")
	}
	if runDebounceMs <= 0 {
		return fmt.Errorf("--debounce-ms must be > 0")
	}

	if !runQuiet {
		logErrf("wlactions (%s)\n", buildinfo.Version())
	}

	cfg := model.Config{
		Quiet:    runQuiet,
		Refresh:  time.Duration(runRefreshMs) * time.Millisecond,
		Debounce: time.Duration(runDebounceMs) * time.Millisecond,
	}
	return session.Run(cfg, args)
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

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "wlactions "+buildinfo.Version())
			return err
		},
	}
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wlactions configuration
# Uncomment a value to enable it. CLI flags override config values.

[display]
# quiet = false       # Suppress live output, only show summary on exit
# refresh-ms = %d    # Live display refresh interval

[scroll]
# debounce-ms = %d   # Continuous-scroll debounce window
`,
		defaultRefreshMs,
		defaultDebounceMs,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
