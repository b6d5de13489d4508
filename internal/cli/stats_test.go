package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
	"github.com/matzehuels/shapescatter/pkg/scene"
)

func TestStatsTables(t *testing.T) {
	c := scene.NewCollector(geom.DefaultViewport)
	c.Observe(0, scene.Placement{Kind: figure.Circle, Center: geom.Pt(0, 0), Size: 10})
	c.Observe(1, scene.Placement{Kind: figure.Circle, Center: geom.Pt(50, -50), Size: 20})
	c.Observe(2, scene.Placement{Kind: figure.Line, Center: geom.Pt(-50, 50), Size: 30})
	s := c.Summary()

	axes := statsTable(s)
	for _, want := range []string{"Mean", "KS", "x", "y", "size", "20.000"} {
		if !strings.Contains(axes, want) {
			t.Errorf("stats table missing %q:\n%s", want, axes)
		}
	}

	kinds := kindsTable(s)
	for _, k := range figure.All {
		if !strings.Contains(kinds, k.String()) {
			t.Errorf("kinds table missing %q", k)
		}
	}
	if !strings.Contains(kinds, "66.7%") || !strings.Contains(kinds, "33.3%") {
		t.Errorf("kinds table shares wrong:\n%s", kinds)
	}
}

func TestRunStatsErrors(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx := withLogger(context.Background(), c.Logger)

	if err := c.runStats(ctx, pipeline.DefaultOptions(), statsOpts{runs: 0}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("runs=0: err = %v, want INVALID_INPUT", err)
	}

	opts := pipeline.DefaultOptions()
	opts.Density = -0.1
	if err := c.runStats(ctx, opts, statsOpts{runs: 1, jsonOut: true}); !errors.Is(err, errors.ErrCodeOutOfRangeDensity) {
		t.Errorf("density=-0.1: err = %v, want OUT_OF_RANGE_DENSITY", err)
	}
}
