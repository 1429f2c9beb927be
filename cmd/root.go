// Package cmd provides CLI commands for ohcrab
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/luizvbo/ohcrab/internal/config"
	"github.com/luizvbo/ohcrab/internal/logger"
	"github.com/luizvbo/ohcrab/internal/ui"
)

var (
	// Version is set during build
	Version = "dev"
	// BuildTime is set during build
	BuildTime = "unknown"
	// Commit is set during build
	Commit = "unknown"

	cfgFile string
	debug   bool

	// rootCmd represents the base command
	rootCmd = &cobra.Command{
		Use:   "ohcrab",
		Short: "Fix the command that just failed",
		Long: `ohcrab reads a failed shell command and its output and suggests
corrected commands, best first.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initialize()
		},
	}
)

// errNoFixes makes the process exit non-zero without printing an error.
var errNoFixes = errors.New("no fixes found")

// Execute runs the root command. This is called by main.main().
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime)
	setupHelp(rootCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errNoFixes) {
			logger.Error("command execution failed", "error", err)
			fmt.Fprintln(os.Stderr, ui.Red("Error: ")+err.Error())
		}
		cancel()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/ohcrab/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// initialize loads configuration and sets up logging from it.
func initialize() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if debug {
		cfg.App.Debug = true
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.File = cfg.Logging.File
	logCfg.MaxSize = cfg.Logging.MaxSize
	logCfg.MaxBackups = cfg.Logging.MaxBackups
	if cfg.App.Debug {
		logCfg.Level = "debug"
	}
	if err := logger.Initialize(logCfg); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if cfg.App.Debug {
		logger.Get().SetLevel(logger.DebugLevel)
	}

	logger.With("init").Debug("configuration loaded",
		"version", Version,
		"config_file", config.Path(),
		"workers", cfg.Pipeline.Workers,
	)
	return nil
}

// setupHelp replaces cobra's help with a styled one on every command.
func setupHelp(root *cobra.Command) {
	help := func(c *cobra.Command, args []string) {
		out := c.OutOrStdout()

		if c == root {
			width := 80
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}
			banner := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(ui.ColorViolet).
				Padding(0, 2).
				MarginBottom(1)
			if width < 60 {
				banner = banner.Width(width - 2)
			}
			fmt.Fprintf(out, "\n%s\n", banner.Render("ohcrab  "+c.Short))
			fmt.Fprintf(out, "%s\n\n", ui.HiBlack(c.Long))
		} else {
			fmt.Fprintf(out, "\n%s\n", ui.Title(fmt.Sprintf("%s - %s", c.CommandPath(), c.Short)))
			if c.Long != "" && c.Long != c.Short {
				fmt.Fprintf(out, "%s\n\n", ui.HiBlack(c.Long))
			} else {
				fmt.Fprintln(out)
			}
		}

		fmt.Fprintln(out, ui.Title("Usage:"))
		if c.Runnable() {
			fmt.Fprintf(out, "  %s\n", ui.Cyan(c.UseLine()))
		}
		if c.HasAvailableSubCommands() {
			fmt.Fprintf(out, "  %s %s\n", ui.Cyan(c.CommandPath()), ui.Green("[command]"))
		}
		fmt.Fprintln(out)

		if c.Example != "" {
			fmt.Fprintln(out, ui.Title("Examples:"))
			fmt.Fprintf(out, "%s\n\n", c.Example)
		}

		if c.HasAvailableSubCommands() {
			fmt.Fprintln(out, ui.Title("Commands:"))
			for _, sub := range c.Commands() {
				if !sub.IsAvailableCommand() {
					continue
				}
				pad := max(20-len(sub.Name()), 2)
				fmt.Fprintf(out, "  %s%s%s\n", ui.Green(sub.Name()), strings.Repeat(" ", pad), ui.HiBlack(sub.Short))
			}
			fmt.Fprintln(out)
		}

		printFlags := func(title string, flags *pflag.FlagSet) {
			fmt.Fprintln(out, ui.Title(title))
			flags.VisitAll(func(f *pflag.Flag) {
				if f.Hidden {
					return
				}
				name := fmt.Sprintf("      --%s", f.Name)
				if f.Shorthand != "" {
					name = fmt.Sprintf("  -%s, --%s", f.Shorthand, f.Name)
				}
				if t := f.Value.Type(); t != "bool" {
					name += " " + t
				}
				pad := max(30-len(name), 2)
				fmt.Fprintf(out, "%s%s%s\n", ui.Yellow(name), strings.Repeat(" ", pad), ui.HiBlack(f.Usage))
			})
			fmt.Fprintln(out)
		}
		if c.HasAvailableLocalFlags() {
			printFlags("Flags:", c.LocalFlags())
		}
		if c.HasAvailableInheritedFlags() {
			printFlags("Global Flags:", c.InheritedFlags())
		}
	}

	var apply func(c *cobra.Command)
	apply = func(c *cobra.Command) {
		c.SetHelpFunc(help)
		for _, sub := range c.Commands() {
			apply(sub)
		}
	}
	apply(root)
}
