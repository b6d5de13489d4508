package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

// renderFlags holds the command-line flags shared by the commands that
// build a render request. Only flags the user set override the config.
type renderFlags struct {
	count       int
	xMin, xMax  float64
	yMin, yMax  float64
	density     float64
	grid        bool
	kinds       string
	seed        uint64
	width       float64
	height      float64
	strokeWidth float64
}

// register adds the request flags to fs, showing defaults from opts.
func (f *renderFlags) register(fs *pflag.FlagSet, opts pipeline.Options) {
	fs.IntVarP(&f.count, "count", "n", opts.Count, "number of figures")
	fs.Float64Var(&f.xMin, "x-min", opts.Viewport.XMin, "left bound of the logical viewport")
	fs.Float64Var(&f.xMax, "x-max", opts.Viewport.XMax, "right bound of the logical viewport")
	fs.Float64Var(&f.yMin, "y-min", opts.Viewport.YMin, "bottom bound of the logical viewport")
	fs.Float64Var(&f.yMax, "y-max", opts.Viewport.YMax, "top bound of the logical viewport")
	fs.Float64VarP(&f.density, "density", "d", opts.Density, "clustering toward the center, 0 (uniform) to 1 (all centered)")
	fs.BoolVar(&f.grid, "grid", opts.ShowGrid, "draw the coordinate grid and axes")
	fs.StringVarP(&f.kinds, "kinds", "k", strings.Join(figure.Names(opts.Kinds), ","), "figure kinds to draw (comma-separated, or \"all\")")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed (0 picks a fresh one)")
	fs.Float64Var(&f.width, "width", opts.Width, "canvas width in pixels")
	fs.Float64Var(&f.height, "height", opts.Height, "canvas height in pixels")
	fs.Float64Var(&f.strokeWidth, "stroke-width", opts.StrokeWidth, "stroke width in pixels")
}

// apply copies the flags the user changed onto opts.
func (f *renderFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) error {
	changed := fs.Changed
	if changed("count") {
		opts.Count = f.count
	}
	if changed("x-min") {
		opts.Viewport.XMin = f.xMin
	}
	if changed("x-max") {
		opts.Viewport.XMax = f.xMax
	}
	if changed("y-min") {
		opts.Viewport.YMin = f.yMin
	}
	if changed("y-max") {
		opts.Viewport.YMax = f.yMax
	}
	if changed("density") {
		opts.Density = f.density
	}
	if changed("grid") {
		opts.ShowGrid = f.grid
	}
	if changed("kinds") {
		if strings.TrimSpace(f.kinds) == "" {
			opts.Kinds = nil
		} else {
			kinds, err := figure.ParseKinds(f.kinds)
			if err != nil {
				return err
			}
			opts.Kinds = kinds
		}
	}
	if changed("seed") {
		opts.Seed = f.seed
	}
	if changed("width") {
		opts.Width = f.width
	}
	if changed("height") {
		opts.Height = f.height
	}
	if changed("stroke-width") {
		opts.StrokeWidth = f.strokeWidth
	}
	return nil
}

// renderOpts holds the output flags of the render command.
type renderOpts struct {
	formats string // comma-separated output formats
	output  string // output file (single format) or base path
	outDir  string // directory for generated file names
	noCache bool
	refresh bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags
	var out renderOpts
	defaults := c.defaultOptions()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a random scatter of figures to image files",
		Long: `Draw a random scatter of figures and write it in one or more formats.

Every format is encoded from the same drawing, so a PNG and an SVG written
together show the same layout. The seed is printed after each run; pass it
back with --seed to reproduce a drawing.`,
		Example: `  shapescatter render
  shapescatter render -n 40 --density 0.8 --kinds circle,parabola -o flowers.png
  shapescatter render --format png,svg,json --seed 42
  shapescatter render --grid=false --out-dir renders/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.defaultOptions()
			if err := flags.apply(cmd.Flags(), &opts); err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				opts.Formats = parseFormats(out.formats)
			}
			opts.Refresh = out.refresh
			return c.runRender(cmd.Context(), opts, out)
		},
	}

	flags.register(cmd.Flags(), defaults)
	cmd.Flags().StringVarP(&out.formats, "format", "f", strings.Join(defaults.Formats, ","), "output format(s): png, svg, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&out.output, "output", "o", "", fmt.Sprintf("output file (single format) or base path (default %q)", pipeline.DefaultFileName))
	cmd.Flags().StringVar(&out.outDir, "out-dir", "", "write to this directory under a generated unique name")
	cmd.Flags().BoolVar(&out.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&out.refresh, "refresh", false, "re-render even if the artifacts are cached")
	cmd.MarkFlagsMutuallyExclusive("output", "out-dir")
	registerListCompletions(cmd)

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatPNG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, out renderOpts) error {
	logger := loggerFromContext(ctx)

	opts.SetRenderDefaults()
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	base := out.output
	if base == "" {
		base = c.cfg.Render.Output
	}
	if out.outDir != "" {
		if err := os.MkdirAll(out.outDir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", out.outDir)
		}
		base = filepath.Join(out.outDir, uuid.New().String())
	}
	paths, err := outputPaths(base, opts.Formats)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, out.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	for _, format := range opts.Formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		printArtifact(paths[format], len(result.Artifacts[format]))
	}
	prog.done(fmt.Sprintf("Rendered %d output(s)", len(opts.Formats)))
	printStats(result.Stats, result.Seed, result.CacheInfo.RenderHit)
	if opts.Seed == 0 {
		printNextStep("Reproduce", fmt.Sprintf("%s render --seed %d", appName, result.Seed))
	}
	return nil
}

// outputPaths maps each format to its file. A single format uses base as
// the file name, appending the extension when base lacks it. Several
// formats share base with any format extension stripped.
func outputPaths(base string, formats []string) (map[string]string, error) {
	if base == "" {
		base = pipeline.DefaultFileName
	}
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 {
		paths[formats[0]] = errors.EnsureExtension(base, formats[0])
	} else {
		stem := base
		ext := filepath.Ext(base)
		if pipeline.ValidFormats[strings.ToLower(strings.TrimPrefix(ext, "."))] {
			stem = strings.TrimSuffix(base, ext)
		}
		for _, f := range formats {
			paths[f] = stem + "." + f
		}
	}
	for _, p := range paths {
		if err := errors.ValidateOutputPath(p); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
