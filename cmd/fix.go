package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/luizvbo/ohcrab/internal/action"
	"github.com/luizvbo/ohcrab/internal/capture"
	"github.com/luizvbo/ohcrab/internal/command"
	"github.com/luizvbo/ohcrab/internal/config"
	"github.com/luizvbo/ohcrab/internal/corrector"
	"github.com/luizvbo/ohcrab/internal/logger"
	"github.com/luizvbo/ohcrab/internal/rule"
	"github.com/luizvbo/ohcrab/internal/rules"
	"github.com/luizvbo/ohcrab/internal/shell"
	"github.com/luizvbo/ohcrab/internal/ui"
	"github.com/luizvbo/ohcrab/internal/vocab"
	"github.com/luizvbo/ohcrab/pkg/fuzzy"
)

// fixCmd suggests corrections for a failed command
var fixCmd = &cobra.Command{
	Use:   "fix [flags] -- <command...>",
	Short: "Suggest corrections for a failed command",
	Long: `Suggest corrected versions of a command that failed.

The command's output is taken from --output, --output-file, standard input
(--output -) or, when none is given, by running the command again.`,
	Example: `  ohcrab fix -- git brnch
  ohcrab fix --output "$(apt isntall vim 2>&1)" -- apt isntall vim
  ohcrab fix -y --format json -- sl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFix,
}

type fixOptions struct {
	output      string
	outputFile  string
	exitCode    int
	selectFirst bool
	copy        bool
	format      string
	shell       string
	workers     int
	noCapture   bool
	applyAction bool
}

var fixOpts fixOptions

func init() {
	rootCmd.AddCommand(fixCmd)

	f := fixCmd.Flags()
	f.StringVar(&fixOpts.output, "output", "", "output of the failed command; - reads standard input")
	f.StringVar(&fixOpts.outputFile, "output-file", "", "read the failed command's output from a file")
	f.IntVar(&fixOpts.exitCode, "exit-code", 0, "exit status of the failed command")
	f.BoolVarP(&fixOpts.selectFirst, "select-first", "y", false, "print only the best suggestion")
	f.BoolVarP(&fixOpts.copy, "copy", "c", false, "copy the best suggestion to the clipboard")
	f.StringVar(&fixOpts.format, "format", "", "output format: text, json or yaml")
	f.StringVar(&fixOpts.shell, "shell", "", "shell to write suggestions for (default from config or $SHELL)")
	f.IntVar(&fixOpts.workers, "workers", 0, "rules evaluated in parallel")
	f.BoolVar(&fixOpts.noCapture, "no-capture", false, "never re-run the command to read its output")
	f.BoolVar(&fixOpts.applyAction, "apply-action", false, "run the best suggestion's side effect")
}

func runFix(cmd *cobra.Command, args []string) error {
	log := logger.With("fix")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := *config.Get()
	applyFixFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	sh := shell.FromName(cfg.Shell.Name)
	failed, err := buildCommand(ctx, cmd, joinScript(args), sh, cfg)
	if err != nil {
		return err
	}
	log.Debug("correcting", "script", failed.Script(), "shell", sh.Name(), "has_output", failed.HasOutput())

	suggestions := newCorrector(cfg, rules.DefaultDeps()).Corrected(ctx, failed, sh)
	if cfg.Output.Limit > 0 && len(suggestions) > cfg.Output.Limit {
		suggestions = suggestions[:cfg.Output.Limit]
	}
	log.Debug("suggestions ready", "count", len(suggestions), "scripts", describe(suggestions))
	if len(suggestions) == 0 {
		log.Debug("no rule matched", "script", failed.Script())
		if err := printSuggestions(cmd.OutOrStdout(), cfg.Output.Format, []rule.CorrectedCommand{}); err != nil {
			return err
		}
		return errNoFixes
	}

	best := suggestions[0]
	if fixOpts.selectFirst {
		suggestions = suggestions[:1]
	}
	if err := printSuggestions(cmd.OutOrStdout(), cfg.Output.Format, suggestions); err != nil {
		return err
	}

	if fixOpts.copy {
		if err := clipboard.WriteAll(best.Script); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Green("✓")+" Copied to clipboard")
	}
	if fixOpts.applyAction && !best.Action.IsZero() {
		if err := action.NewExecutor().Execute(best.Action); err != nil {
			return fmt.Errorf("failed to apply %s: %w", best.Action, err)
		}
		log.Info("side effect applied", "rule", best.Rule, "action", best.Action.String())
	}
	return nil
}

// applyFixFlags lets explicitly set flags override the loaded configuration.
func applyFixFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = fixOpts.format
	}
	if flags.Changed("shell") {
		cfg.Shell.Name = fixOpts.shell
	}
	if flags.Changed("workers") {
		cfg.Pipeline.Workers = fixOpts.workers
	}
	if fixOpts.noCapture {
		cfg.Capture.Enabled = false
	}
}

// joinScript rebuilds the failed command line. A single argument is taken
// as the whole script; several are quoted and joined.
func joinScript(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return shellquote.Join(args...)
}

// buildCommand assembles the failed command from flags, falling back to
// capturing its output by running it again.
func buildCommand(ctx context.Context, cmd *cobra.Command, script string, sh shell.Shell, cfg config.Config) (*command.Command, error) {
	flags := cmd.Flags()

	var failed *command.Command
	switch {
	case flags.Changed("output") && fixOpts.output == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read output from stdin: %w", err)
		}
		failed = command.New(script, string(data))
	case flags.Changed("output"):
		failed = command.New(script, fixOpts.output)
	case fixOpts.outputFile != "":
		data, err := afero.ReadFile(afero.NewOsFs(), fixOpts.outputFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read output file: %w", err)
		}
		failed = command.New(script, string(data))
	case cfg.Capture.Enabled:
		captured, err := capture.New(cfg.Capture.Timeout).Capture(ctx, sh, script)
		if err != nil {
			logger.With("fix").Warn("could not capture output", "script", script, "error", err)
			failed = command.NewWithoutOutput(script)
		} else {
			failed = captured
		}
	default:
		failed = command.NewWithoutOutput(script)
	}

	if flags.Changed("exit-code") {
		failed = failed.WithExitCode(fixOpts.exitCode)
	}
	return failed, nil
}

// newCorrector builds the pipeline the configuration describes.
func newCorrector(cfg config.Config, deps rules.Deps) *corrector.Corrector {
	lookup := []vocab.Option{vocab.WithTimeout(cfg.Vocabulary.Timeout)}
	if cfg.Vocabulary.Cache {
		lookup = append(lookup, vocab.WithCache(cfg.Vocabulary.CacheSize, cfg.Vocabulary.CacheTTL))
	}
	deps.Vocab = vocab.New(lookup...)

	all := rules.Registry(deps)
	selected, unknown := rules.Select(all, selectionFrom(cfg))
	warnUnknownRules(unknown, rules.Names(all))

	return corrector.New(selected, corrector.WithWorkers(cfg.Pipeline.Workers))
}

func selectionFrom(cfg config.Config) rules.Selection {
	return rules.Selection{
		Enabled:  cfg.Rules.Enabled,
		Disabled: cfg.Rules.Disabled,
		Priority: cfg.Rules.Priority,
	}
}

func warnUnknownRules(unknown, known []string) {
	log := logger.With("rules")
	for _, name := range unknown {
		if closest, ok := fuzzy.Closest(name, known); ok {
			log.Warn("unknown rule in configuration", "name", name, "did_you_mean", closest)
			continue
		}
		log.Warn("unknown rule in configuration", "name", name)
	}
}

func printSuggestions(w io.Writer, format string, suggestions []rule.CorrectedCommand) error {
	if format == config.FormatText || format == "" {
		return ui.NewRenderer(w).Suggestions(suggestions)
	}
	return ui.Encode(w, format, suggestions)
}

// describe is used in debug logs to summarize a result list.
func describe(suggestions []rule.CorrectedCommand) string {
	scripts := make([]string, len(suggestions))
	for i, s := range suggestions {
		scripts[i] = s.Script
	}
	return strings.Join(scripts, " | ")
}
