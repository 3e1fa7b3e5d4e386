package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ncd/internal/config"
	"ncd/internal/log"
	"ncd/internal/output"
	"ncd/internal/resolve"
)

var (
	// Global flags
	debug bool
	quiet bool

	// Resolution flags
	flagMode        string
	flagExact       bool
	flagFuzzy       bool
	flagList        bool
	flagInteractive bool
	flagCopy        bool

	// Shared state injected into commands
	cfg config.Config
)

// Exit codes returned to the shell wrapper. The wrapper relies on
// these staying stable, so treat them as part of the CLI contract.
const (
	exitOK        = 0
	exitNotFound  = 2
	exitBoundary  = 3
	exitNoMatch   = 4
	exitAmbiguous = 5
	exitNotSet    = 6
)

// rootCmd is the resolver itself; ncd is a single-verb tool and the
// query rides on the root command.
var rootCmd = &cobra.Command{
	Use:   "ncd [flags] [query]",
	Short: "Resolve a symbolic navigation query to a directory path",
	Long: `ncd resolves a short navigation query into a single absolute path
and prints it for a shell wrapper to cd into (see 'ncd init').

Queries are tried against a fixed-priority pipeline: an exact path,
ellipsis parent hops, children of the current directory, then the
configured search roots.

Query forms:
  project       directory name, searched in CWD then the roots
  project/src   resolve 'project', then 'src' beneath it
  proj*         wildcard match (* any run, ? one character)
  ...           up two parent levels (each extra dot adds one)
  .../build     up two levels, then down into build
  ~             home directory
  -             previous directory (OLDPWD)
  \projects     anchored at the current drive root`,
	Example: `  cd "$(ncd proj*)"       # jump to the unique match
  ncd --list 'pro*'       # print every match instead of failing
  ncd .....               # up four levels
  ncd --cd target docs    # bookmark-style root matching
  ncd -i 'de*'            # pick interactively when ambiguous`,
	Args:                       cobra.MaximumNArgs(1),
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Flags are only known after parsing, so the logger is
		// attached here rather than in Execute.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, debug, quiet))
		cmd.SetContext(ctx)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := "~"
		if len(args) > 0 {
			raw = args[0]
		}
		return runResolve(cmd.Context(), raw)
	},
}

// Execute runs the CLI and maps resolver errors onto exit codes for
// the shell wrapper.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ncd: %v\n", err)
		os.Exit(1)
	}
	cfg = loadedCfg

	ctx := context.Background()
	ctx = output.WithPrinter(ctx, os.Stdout)
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		if !quiet {
			fmt.Fprintf(os.Stderr, "ncd: %v\n", err)
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps a resolution error onto its reserved exit code.
func exitCode(err error) int {
	var (
		notFound  *resolve.NotFoundError
		boundary  *resolve.BoundaryError
		noMatch   *resolve.NoMatchError
		ambiguous *resolve.AmbiguousError
		notSet    *resolve.NotSetError
	)
	switch {
	case errors.As(err, &notFound):
		return exitNotFound
	case errors.As(err, &boundary):
		return exitBoundary
	case errors.As(err, &noMatch):
		return exitNoMatch
	case errors.As(err, &ambiguous):
		return exitAmbiguous
	case errors.As(err, &notSet):
		return exitNotSet
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Trace the resolution pipeline on stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress error messages on resolution failure")
	rootCmd.MarkFlagsMutuallyExclusive("debug", "quiet")

	rootCmd.Flags().StringVar(&flagMode, "cd", "", "Search strategy for roots: origin, target or hybrid")
	rootCmd.Flags().BoolVarP(&flagExact, "exact", "e", false, "Disable case-insensitive matching")
	rootCmd.Flags().BoolVarP(&flagFuzzy, "fuzzy", "f", false, "Match substrings without wildcard characters")
	rootCmd.Flags().BoolVarP(&flagList, "list", "l", false, "List all matches instead of jumping")
	rootCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Pick interactively when a query is ambiguous")
	rootCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the resolved path to the clipboard")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newInitCmd())
}
