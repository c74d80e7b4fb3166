package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Afrawles/contribimg/internal/config"
	"github.com/Afrawles/contribimg/internal/contribimg"
	"github.com/Afrawles/contribimg/internal/report"
)

const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitNoContrib = 3
)

type options struct {
	output   string
	apiURL   string
	cellSize int
	padding  int
	timeout  time.Duration
	logLevel string
}

// NewCommand builds the root command. Defaults come from cfg, which
// already reflects the environment.
func NewCommand(cfg *config.Config, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{
		output:   cfg.Output.Directory,
		apiURL:   cfg.Source.BaseURL,
		cellSize: cfg.Grid.CellSize,
		padding:  cfg.Grid.Padding,
		timeout:  cfg.Source.Timeout,
		logLevel: cfg.LogLevel,
	}

	cmd := &cobra.Command{
		Use:   "contribimg <username>",
		Short: "Render a GitHub contribution graph as a PNG",
		Long: `contribimg fetches a user's contribution calendar and draws it as a
53x7 grid of colored cells, saved as contributions.png.`,
		Args:          requireUsername,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger(opts.logLevel, stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Output.Directory = opts.output
			cfg.Source.BaseURL = opts.apiURL
			cfg.Source.Timeout = opts.timeout
			cfg.Grid.CellSize = opts.cellSize
			cfg.Grid.Padding = opts.padding
			if err := cfg.Validate(); err != nil {
				return err
			}
			return generate(cmd.Context(), cfg, args[0], stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", opts.output, "Output directory")
	flags.StringVar(&opts.apiURL, "api-url", opts.apiURL, "Contributions API base URL")
	flags.IntVar(&opts.cellSize, "cell-size", opts.cellSize, "Cell size in pixels")
	flags.IntVar(&opts.padding, "padding", opts.padding, "Gap between cells in pixels")
	flags.DurationVar(&opts.timeout, "timeout", opts.timeout, "HTTP request timeout")
	cmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", opts.logLevel, "log level (trace, debug, info, warn, error)")

	return cmd
}

func requireUsername(_ *cobra.Command, args []string) error {
	switch {
	case len(args) == 0 || args[0] == "":
		return report.ErrUsage
	case len(args) > 1:
		return fmt.Errorf("%w: expected exactly one username, got %d", report.ErrUsage, len(args))
	}
	return nil
}

func generate(ctx context.Context, cfg *config.Config, username string, stdout, stderr io.Writer) error {
	app, err := contribimg.New(cfg, logrus.StandardLogger())
	if err != nil {
		return err
	}

	bar := newSpinner(stderr, fmt.Sprintf("Fetching contributions for %s", username))
	outcome, err := app.Run(ctx, username)
	finishBar(bar)
	if err != nil {
		return err
	}

	printOutcome(stdout, outcome)
	return nil
}

func printOutcome(w io.Writer, o *contribimg.Outcome) {
	p := message.NewPrinter(language.English)

	color.New(color.Bold, color.FgGreen).Fprint(w, "✔ ")
	fmt.Fprintf(w, "Contribution image generated as %s for %s\n", o.Path, bold("%s", o.Subject))
	p.Fprintf(w, "  %d days, %d active, %d contributions\n", o.Stats.Days, o.Stats.Active, o.Stats.Total)
	if o.Stats.Skipped > 0 {
		p.Fprintf(w, "  %d days did not fit the grid and were left out\n", o.Stats.Skipped)
	}
}

// handleCmdError prints err for the user and returns the process exit code.
func handleCmdError(cmd *cobra.Command, err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}

	fail := color.New(color.Bold, color.FgRed)
	switch {
	case errors.Is(err, report.ErrUsage):
		fail.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		return exitUsage
	case errors.Is(err, report.ErrNoContributions):
		fail.Fprintln(stderr, "Error: no contribution data found")
		return exitNoContrib
	default:
		fail.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
}

func execute() int {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	cmd := NewCommand(cfg, os.Stdout, os.Stderr)
	return handleCmdError(cmd, cmd.ExecuteContext(context.Background()), os.Stderr)
}
