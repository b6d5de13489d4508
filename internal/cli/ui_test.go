package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatViewport(t *testing.T) {
	got := formatViewport(geom.Viewport{XMin: -100, XMax: 100, YMin: -2.5, YMax: 7})
	if want := "[-100, 100] × [-2.5, 7]"; got != want {
		t.Errorf("formatViewport() = %q, want %q", got, want)
	}
}

func TestFormatKinds(t *testing.T) {
	names := []string{"triangle", "circle", "line"}
	if got := formatKinds(names); got != "circle, line, triangle" {
		t.Errorf("formatKinds() = %q", got)
	}
	if names[0] != "triangle" {
		t.Error("formatKinds sorted its argument in place")
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		name    string
		stats   pipeline.Stats
		cached  bool
		want    []string
		notWant []string
	}{
		{
			name:  "fresh render",
			stats: pipeline.Stats{Figures: 10, Commands: 34, Bytes: map[string]int{"png": 2048}},
			want:  []string{"10 figures", "34 draw commands", "seed 7", "2.0 KiB", iconFresh},
		},
		{
			name:    "cache hit",
			stats:   pipeline.Stats{Figures: 10},
			cached:  true,
			want:    []string{"10 figures", "seed 7", iconCached},
			notWant: []string{"draw command", "0 figures"},
		},
		{
			name:    "single figure",
			stats:   pipeline.Stats{Figures: 1, Commands: 1},
			want:    []string{"1 figure ", "1 draw command "},
			notWant: []string{"1 figures"},
		},
		{
			name:    "empty drawing",
			stats:   pipeline.Stats{},
			want:    []string{"seed 7"},
			notWant: []string{"figure"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := statsLine(tt.stats, 7, tt.cached)
			for _, s := range tt.want {
				if !strings.Contains(line, s) {
					t.Errorf("line %q missing %q", line, s)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(line, s) {
					t.Errorf("line %q contains %q", line, s)
				}
			}
		})
	}
}
