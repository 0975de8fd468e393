package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/darch/internal/archive"
	"github.com/bamsammich/darch/internal/config"
	"github.com/bamsammich/darch/internal/event"
	"github.com/bamsammich/darch/internal/filter"
	"github.com/bamsammich/darch/internal/stats"
	"github.com/bamsammich/darch/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// filterFlag is a custom pflag.Value that preserves CLI ordering of
// --exclude and --include rules by appending to a shared filter.Chain.
type filterFlag struct {
	chain   *filter.Chain
	include bool
}

var _ pflag.Value = (*filterFlag)(nil)

func (*filterFlag) String() string { return "" }
func (*filterFlag) Type() string   { return "string" }

func (f *filterFlag) Set(val string) error {
	if f.include {
		return f.chain.AddInclude(val)
	}
	return f.chain.AddExclude(val)
}

// errUsage reports a wrong positional argument count.
var errUsage = errors.New("usage")

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: CLI entry point wires flags, config and logging
func run(args []string, stdout, stderr io.Writer) int {
	var (
		verbose     bool
		quiet       bool
		showVersion bool
		digest      bool
		noSummary   bool
		hexStyleStr string
		configFile  string
		filterFile  string
		minSizeStr  string
		maxSizeStr  string
		logFile     string
	)

	chain := filter.NewChain()

	rootCmd := &cobra.Command{
		Use:   "darch-list [flags] <archive>",
		Short: "List the entries of a darch archive without extracting them",
		Long: `List the entries of a darch archive without extracting them.

Prints the archive size, magic number and entry count, then each entry's
stored path and body size in hex. Bodies are skipped, never read.

To list an archive whose name matches a subcommand such as "help", put
"--" before it:

  darch-list -- help`,
		Args: func(_ *cobra.Command, args []string) error {
			if showVersion {
				return nil
			}
			if len(args) != 1 {
				return errUsage
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(stdout, "darch-list %s\n", version)
				return nil
			}
			path := args[0]

			// Configure logging.
			logLevel := slog.LevelWarn
			if verbose {
				logLevel = slog.LevelDebug
			} else if !quiet {
				logLevel = slog.LevelInfo
			}
			textHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			var logHandler slog.Handler = textHandler
			if logFile != "" {
				lf, lfErr := os.Create(logFile)
				if lfErr != nil {
					return fmt.Errorf("open log file: %w", lfErr)
				}
				defer lf.Close()
				jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})
				logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
			}
			logger := slog.New(logHandler)
			slog.SetDefault(logger)

			// Load optional config file.
			var (
				cfg    config.Config
				cfgErr error
			)
			if configFile != "" {
				if _, err := os.Stat(configFile); errors.Is(err, os.ErrNotExist) {
					slog.Warn("config file not found", "path", configFile)
				}
				cfg, cfgErr = config.LoadFile(configFile)
			} else {
				cfg, cfgErr = config.Load()
			}
			switch {
			case errors.Is(cfgErr, config.ErrUnknownKeys):
				slog.Warn("ignoring unknown config keys", "error", cfgErr)
			case cfgErr != nil:
				slog.Warn("failed to load config", "error", cfgErr)
			}

			applyConfigDefaults(cmd, cfg.Defaults, &hexStyleStr, &digest, &noSummary)

			hexStyle, err := ui.ParseHexStyle(hexStyleStr)
			if err != nil {
				return &exitError{code: 2, err: fmt.Errorf("invalid --hex-style: %w", err)}
			}

			// CLI rules come first so they win over file and config rules.
			if filterFile != "" {
				if err := chain.LoadFile(filterFile); err != nil {
					return &exitError{code: 2, err: fmt.Errorf("load filter file: %w", err)}
				}
			}
			if err := applyConfigFilter(chain, cfg.Filter); err != nil {
				slog.Warn("ignoring config filter", "error", err)
			}

			// Size filters: CLI wins over config.
			if minSizeStr == "" && cfg.Filter.MinSize != nil {
				minSizeStr = *cfg.Filter.MinSize
			}
			if maxSizeStr == "" && cfg.Filter.MaxSize != nil {
				maxSizeStr = *cfg.Filter.MaxSize
			}
			if minSizeStr != "" {
				n, err := filter.ParseSize(minSizeStr)
				if err != nil {
					return &exitError{code: 2, err: fmt.Errorf("invalid --min-size: %w", err)}
				}
				chain.SetMinSize(n)
			}
			if maxSizeStr != "" {
				n, err := filter.ParseSize(maxSizeStr)
				if err != nil {
					return &exitError{code: 2, err: fmt.Errorf("invalid --max-size: %w", err)}
				}
				chain.SetMaxSize(n)
			}

			collector := stats.NewCollector()
			reporterCfg := ui.Config{
				Writer:   stdout,
				Stats:    collector,
				HexStyle: hexStyle,
				Quiet:    quiet,
			}
			// Only set filter if it has rules/size constraints.
			if !chain.Empty() {
				reporterCfg.Filter = chain
			}
			reporter := ui.NewReporter(reporterCfg)
			handler := event.Logged(logger, event.Tee(collector, reporter))

			slog.Debug("scanning archive",
				"archive", path,
				"hex_style", hexStyle.String(),
				"digest", digest,
				"filtered", !chain.Empty(),
			)

			result := archive.ScanFile(path, archive.Config{Handler: handler})
			slog.Debug("scan stats", "archive", path, "stats", collector.Snapshot().String())

			if digest && result.Status != archive.Failed {
				sum, err := archive.Fingerprint(path)
				if err != nil {
					slog.Warn("digest failed", "archive", path, "error", err)
				} else {
					handler.Handle(event.Event{Type: event.DigestComputed, Digest: sum})
				}
			}

			if !quiet && !noSummary {
				if summary := reporter.Summary(); summary != "" {
					fmt.Fprintln(stderr, summary)
				}
			}

			switch result.Status {
			case archive.StoppedAtHeader:
				slog.Debug("bad archive magic", "archive", path, "magic", result.Header.Magic)
			case archive.StoppedAtEntry:
				slog.Debug("bad entry magic", "archive", path, "index", result.StopIndex)
			case archive.Failed:
				slog.Debug("scan failed", "archive", path, "error", result.Err)
				return &exitError{code: 1}
			case archive.Complete:
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging (entry offsets, decode steps)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the listing; only the exit code reports problems")
	rootCmd.Flags().
		StringVar(&hexStyleStr, "hex-style", "upper", "number format: upper (0xAB), lower (0xab) or prefix-upper (0XAB)")
	rootCmd.Flags().BoolVar(&digest, "digest", false, "print the BLAKE3 digest of the archive file")
	rootCmd.Flags().BoolVar(&noSummary, "no-summary", false, "do not print the summary line to stderr")
	rootCmd.Flags().StringVar(&configFile, "config", "", "read configuration from FILE instead of the default path")

	// Filter flags keep CLI ordering through a custom pflag.Value.
	rootCmd.Flags().
		VarP(&filterFlag{chain: chain, include: false}, "exclude", "", "hide entries matching PATTERN (repeatable)")
	rootCmd.Flags().
		VarP(&filterFlag{chain: chain, include: true}, "include", "", "show entries matching PATTERN (repeatable)")
	rootCmd.Flags().StringVar(&filterFile, "filter", "", "read filter rules from FILE")
	rootCmd.Flags().
		StringVar(&minSizeStr, "min-size", "", "hide entries smaller than SIZE (e.g. 0x400, 100K, 1.5M)")
	rootCmd.Flags().
		StringVar(&maxSizeStr, "max-size", "", "hide entries larger than SIZE (e.g. 0x400, 500M); 0 shows only empty entries")
	rootCmd.Flags().
		StringVar(&logFile, "log", "", "write structured JSON log to FILE")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(newDocsCmd())

	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stdout, "Usage: %s <archive name>.\n", rootCmd.Name())
			return 2
		}
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", exitErr.err)
			}
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	return 0
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(
	cmd *cobra.Command,
	defaults config.DefaultsConfig,
	hexStyle *string,
	digest *bool,
	noSummary *bool,
) {
	if !cmd.Flags().Changed("hex-style") && defaults.HexStyle != nil {
		*hexStyle = *defaults.HexStyle
	}
	if !cmd.Flags().Changed("digest") && defaults.Digest != nil {
		*digest = *defaults.Digest
	}
	if !cmd.Flags().Changed("no-summary") && defaults.Summary != nil {
		*noSummary = !*defaults.Summary
	}
}

// applyConfigFilter appends the config file's rules after any CLI rules.
func applyConfigFilter(chain *filter.Chain, fc config.FilterConfig) error {
	for _, p := range fc.Include {
		if err := chain.AddInclude(p); err != nil {
			return fmt.Errorf("include %q: %w", p, err)
		}
	}
	for _, p := range fc.Exclude {
		if err := chain.AddExclude(p); err != nil {
			return fmt.Errorf("exclude %q: %w", p, err)
		}
	}
	return nil
}

type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }
