package scene

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/geom"
)

// AxisStats summarizes the placement of centers along one axis.
type AxisStats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	// KS is the Kolmogorov-Smirnov distance between the empirical
	// distribution and the uniform distribution over the viewport axis.
	KS float64 `json:"ks"`
}

// Summary describes the placements of one or more render passes.
type Summary struct {
	Count    int                 `json:"count"`
	X        AxisStats           `json:"x"`
	Y        AxisStats           `json:"y"`
	Size     AxisStats           `json:"size"`
	Kinds    map[figure.Kind]int `json:"kinds"`
	Centered int                 `json:"centered"`
	// Inside counts centers that fall within the viewport, bounds included.
	Inside int `json:"inside"`
}

// Collector accumulates placements. Its Observe method can be passed to
// [WithObserver] directly.
type Collector struct {
	viewport geom.Viewport
	xs, ys   []float64
	sizes    []float64
	kinds    map[figure.Kind]int
	centered int
	inside   int
}

// NewCollector returns a collector measuring against viewport v.
func NewCollector(v geom.Viewport) *Collector {
	return &Collector{viewport: v, kinds: make(map[figure.Kind]int)}
}

// Observe records one placement.
func (c *Collector) Observe(_ int, p Placement) {
	c.xs = append(c.xs, p.Center.X)
	c.ys = append(c.ys, p.Center.Y)
	c.sizes = append(c.sizes, p.Size)
	c.kinds[p.Kind]++
	if p.Center == c.viewport.Center() {
		c.centered++
	}
	if c.viewport.Contains(p.Center) {
		c.inside++
	}
}

// Len returns the number of recorded placements.
func (c *Collector) Len() int { return len(c.xs) }

// Summary computes statistics over everything observed so far.
func (c *Collector) Summary() Summary {
	kinds := make(map[figure.Kind]int, len(c.kinds))
	for k, n := range c.kinds {
		kinds[k] = n
	}
	v := c.viewport
	return Summary{
		Count:    len(c.xs),
		X:        axisStats(c.xs, v.XMin, v.XMax),
		Y:        axisStats(c.ys, v.YMin, v.YMax),
		Size:     axisStats(c.sizes, MinSize, MinSize+SizeSpread),
		Kinds:    kinds,
		Centered: c.centered,
		Inside:   c.inside,
	}
}

func axisStats(samples []float64, lo, hi float64) AxisStats {
	if len(samples) == 0 {
		return AxisStats{}
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	mean, std := stat.MeanStdDev(sorted, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return AxisStats{
		Mean:   mean,
		StdDev: std,
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		KS:     UniformKS(sorted, lo, hi),
	}
}

// UniformKS returns the one-sample Kolmogorov-Smirnov statistic of samples
// against the uniform distribution on [lo, hi). samples need not be sorted.
func UniformKS(samples []float64, lo, hi float64) float64 {
	n := len(samples)
	if n == 0 || hi <= lo {
		return 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	u := distuv.Uniform{Min: lo, Max: hi}
	var d float64
	for i, x := range sorted {
		f := u.CDF(x)
		d = max(d, float64(i+1)/float64(n)-f, f-float64(i)/float64(n))
	}
	return d
}

// KSCritical returns the approximate critical value of the one-sample
// Kolmogorov-Smirnov statistic at significance 0.001 for n samples.
func KSCritical(n int) float64 {
	if n <= 0 {
		return 1
	}
	return 1.95 / math.Sqrt(float64(n))
}
