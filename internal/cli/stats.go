package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
	"github.com/matzehuels/shapescatter/pkg/scene"
)

type statsOpts struct {
	runs    int
	jsonOut bool
}

// statsCommand creates the stats command, which samples placements
// without encoding any image.
func (c *CLI) statsCommand() *cobra.Command {
	var flags renderFlags
	opts := statsOpts{runs: 1}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize where and how large figures are placed",
		Long: `Sample one or more drawings and summarize the figure placements: mean,
standard deviation and median of the centers and sizes, and the
Kolmogorov-Smirnov distance of each to the uniform distribution. A density
of 0 should give small distances; higher densities pull the centers
together.`,
		Example: `  shapescatter stats -n 1000 --density 0
  shapescatter stats -n 200 --runs 50 --density 0.5 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := c.defaultOptions()
			if err := flags.apply(cmd.Flags(), &req); err != nil {
				return err
			}
			return c.runStats(cmd.Context(), req, opts)
		},
	}

	flags.register(cmd.Flags(), c.defaultOptions())
	cmd.Flags().IntVar(&opts.runs, "runs", opts.runs, "number of drawings to sample, with consecutive seeds")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the summary as JSON")
	registerListCompletions(cmd)

	return cmd
}

func (c *CLI) runStats(ctx context.Context, opts pipeline.Options, so statsOpts) error {
	if so.runs < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "runs must be at least 1, got %d", so.runs)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))

	var spinner *Spinner
	if !so.jsonOut {
		spinner = newSpinner(ctx, os.Stderr, "Sampling drawing", so.runs)
		spinner.Start()
	}

	collector := scene.NewCollector(opts.Viewport)
	first := opts.Seed
	for i := 0; i < so.runs; i++ {
		run := opts
		run.Seed = first + uint64(i)
		if run.Seed == 0 {
			run.Seed = 1
		}
		if _, _, err := runner.Draw(ctx, run, collector.Observe); err != nil {
			if spinner != nil {
				spinner.StopWithError("Sampling failed")
			}
			return err
		}
		if spinner != nil {
			spinner.Advance()
		}
	}
	if spinner != nil {
		spinner.Stop()
	}

	summary := collector.Summary()
	if so.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Seed uint64 `json:"seed"`
			Runs int    `json:"runs"`
			scene.Summary
		}{first, so.runs, summary})
	}

	printSuccess("Sampled %d figures from %d drawing(s)", summary.Count, so.runs)
	printKeyValue("Seed", fmt.Sprintf("%d", first))
	printKeyValue("Viewport", formatViewport(opts.Viewport))
	printKeyValue("Kinds", formatKinds(figure.Names(opts.Kinds)))
	printKeyValue("Inside", fmt.Sprintf("%d of %d", summary.Inside, summary.Count))
	printKeyValue("Centered", fmt.Sprintf("%d", summary.Centered))
	fmt.Println(statsTable(summary))
	fmt.Println(kindsTable(summary))
	if summary.Count > 0 {
		printDetail("KS below %.4f is consistent with a uniform spread", scene.KSCritical(summary.Count))
	}
	return nil
}

var statsHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

func newStatsTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return statsHeaderStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
}

// statsTable renders the per-axis statistics.
func statsTable(s scene.Summary) string {
	t := newStatsTable("", "Mean", "StdDev", "Median", "KS")
	for _, row := range []struct {
		name string
		a    scene.AxisStats
	}{
		{"x", s.X},
		{"y", s.Y},
		{"size", s.Size},
	} {
		t.Row(row.name,
			fmt.Sprintf("%.3f", row.a.Mean),
			fmt.Sprintf("%.3f", row.a.StdDev),
			fmt.Sprintf("%.3f", row.a.Median),
			fmt.Sprintf("%.4f", row.a.KS))
	}
	return t.Render()
}

// kindsTable renders how often each kind was drawn, in enumeration order.
func kindsTable(s scene.Summary) string {
	t := newStatsTable("Kind", "Count", "Share")
	for _, k := range figure.All {
		n := s.Kinds[k]
		share := 0.0
		if s.Count > 0 {
			share = float64(n) / float64(s.Count)
		}
		t.Row(k.String(), fmt.Sprintf("%d", n), fmt.Sprintf("%.1f%%", 100*share))
	}
	return t.Render()
}
