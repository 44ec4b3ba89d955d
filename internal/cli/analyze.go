package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/mberan/tfm"
	"github.com/mberan/tfm/internal/adapters/baseline"
	"github.com/mberan/tfm/internal/logparse"
	"github.com/mberan/tfm/internal/presentation/render"
	"github.com/mberan/tfm/internal/presentation/tui"
	"github.com/mberan/tfm/pkg/domain"
)

// AnalyzeOptions contains all the configuration for the analyze command.
type AnalyzeOptions struct {
	LogFile             string
	States              []string
	Format              string
	Output              string
	MinFailures         int
	Pretty              bool
	Baseline            string
	RegressionThreshold float64
	SlowThresholdMS     float64

	// IO is injectable for tests; nil fields fall back to the process
	// streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o *AnalyzeOptions) defaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Analyze handles the 'analyze' command logic: parse a log file (or
// stdin), build the matrix and write the rendered report.
func Analyze(opts AnalyzeOptions) error {
	opts.defaults()

	tracker, err := buildTracker(&opts)
	if err != nil {
		return err
	}

	output, err := renderReport(tracker, opts)
	if err != nil {
		return err
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintf(opts.Stderr, "Matrix written to %s\n", opts.Output)
		return nil
	}

	if opts.Pretty && opts.Format == "markdown" {
		rendered, err := tui.NewRenderer()(output)
		if err == nil {
			fmt.Fprint(opts.Stdout, rendered)
			return nil
		}
		// Fall through to plain output if the terminal renderer fails.
	}
	fmt.Fprintln(opts.Stdout, output)
	return nil
}

// buildTracker parses the configured log source into a fresh tracker.
func buildTracker(opts *AnalyzeOptions) (*tfm.Tracker, error) {
	tracker := tfm.New(tfm.WithStates(opts.States))
	parser := logparse.New()

	if opts.LogFile != "" {
		if _, err := os.Stat(opts.LogFile); err != nil {
			return nil, fmt.Errorf("file not found: %s", opts.LogFile)
		}
		if err := parser.ParseFile(opts.LogFile, tracker); err != nil {
			return nil, err
		}
		return tracker, nil
	}

	if f, ok := opts.Stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(opts.Stderr, "Reading from stdin (Ctrl+D to finish)...")
	}
	if err := parser.Parse(opts.Stdin, tracker); err != nil {
		return nil, err
	}
	return tracker, nil
}

func renderReport(tracker *tfm.Tracker, opts AnalyzeOptions) (string, error) {
	sum := tracker.Summary()

	switch opts.Format {
	case "markdown", "":
		output := render.Markdown(sum)
		if opts.SlowThresholdMS > 0 {
			output += "\n" + render.SlowSection(tracker.SlowTransitions(opts.SlowThresholdMS), opts.SlowThresholdMS)
		}
		if opts.Baseline != "" {
			section, err := baselineSection(tracker, opts)
			if err != nil {
				return "", err
			}
			output += section
		}
		return output, nil
	case "ascii":
		return render.ASCII(sum), nil
	case "json":
		return render.JSON(sum, opts.MinFailures)
	default:
		return "", fmt.Errorf("unsupported format: %s (expected markdown, ascii or json)", opts.Format)
	}
}

// baselineSection compares current rates against the persisted baseline.
// When the baseline does not exist yet it is created from the current
// run and the comparison is skipped.
func baselineSection(tracker *tfm.Tracker, opts AnalyzeOptions) (string, error) {
	store, name := baselineStore(opts.Baseline)
	ctx := context.Background()
	rates := tracker.TransitionRates()

	base, err := store.Load(ctx, name)
	if errors.Is(err, domain.ErrBaselineNotFound) {
		if err := store.Save(ctx, name, rates); err != nil {
			return "", fmt.Errorf("failed to create baseline: %w", err)
		}
		fmt.Fprintf(opts.Stderr, "No baseline found. Created %s from current rates.\n", opts.Baseline)
		return "", nil
	}
	if err != nil {
		return "", err
	}

	regressions := tfm.CompareToBaseline(rates, base, opts.RegressionThreshold)
	return "\n" + render.RegressionSection(regressions), nil
}

// baselineStore maps a user-supplied baseline path onto a FileStore
// rooted at its directory.
func baselineStore(path string) (*baseline.FileStore, string) {
	dir, file := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	name := strings.TrimSuffix(file, ".json")
	return &baseline.FileStore{BasePath: dir}, name
}
