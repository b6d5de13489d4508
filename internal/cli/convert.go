package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
	"github.com/matzehuels/shapescatter/pkg/render/sink"
)

type convertOpts struct {
	formats     string
	output      string
	strokeWidth float64
}

// convertCommand creates the convert command, which re-encodes a JSON
// drawing without sampling anything.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <drawing.json>",
		Short: "Re-encode a saved JSON drawing into other formats",
		Long: `Re-encode a drawing saved with --format json. The commands are replayed
as recorded, so the output shows exactly the saved layout.`,
		Example: `  shapescatter render -f json -o scene.json
  shapescatter convert scene.json -f png,svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatPNG, "output format(s): png, svg, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: input without .json)")
	cmd.Flags().Float64Var(&opts.strokeWidth, "stroke-width", pipeline.DefaultStrokeWidth, "stroke width in pixels")
	registerListCompletions(cmd)

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, input string, opts convertOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	if err := errors.ValidateFinite(errors.ErrCodeInvalidInput, "stroke width", opts.strokeWidth); err != nil {
		return err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", input)
	}
	drawing, err := sink.ReadJSON(data)
	if err != nil {
		return err
	}

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}
	paths, err := outputPaths(base, formats)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if filepath.Clean(p) == filepath.Clean(input) {
			return errors.New(errors.ErrCodeInvalidPath, "output %s would overwrite the input", p)
		}
	}

	prog := newProgress(loggerFromContext(ctx))
	stats := pipeline.Stats{
		Commands: len(drawing.Recorder.Commands),
		Bytes:    make(map[string]int, len(formats)),
	}
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := pipeline.EncodeDrawing(drawing, format, opts.strokeWidth)
		if err != nil {
			return err
		}
		if err := writeFile(paths[format], out); err != nil {
			return err
		}
		stats.Bytes[format] = len(out)
		printArtifact(paths[format], len(out))
	}
	prog.done(fmt.Sprintf("Converted %s", input))
	printStats(stats, drawing.Seed, false)
	return nil
}
