package scene

import (
	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/geom"
)

// Default request values, matching the parameter form.
const (
	DefaultCount   = 10
	DefaultDensity = 0.3
)

// Request describes one render pass.
type Request struct {
	Count    int           `json:"count"`
	Viewport geom.Viewport `json:"viewport"`
	Density  float64       `json:"density"`
	ShowGrid bool          `json:"show_grid"`
	Kinds    []figure.Kind `json:"kinds"`
}

// DefaultRequest returns the request the parameter form starts with: ten
// figures of every kind over -100..100 with density 0.3 and the grid on.
func DefaultRequest() Request {
	return Request{
		Count:    DefaultCount,
		Viewport: geom.DefaultViewport,
		Density:  DefaultDensity,
		ShowGrid: true,
		Kinds:    append([]figure.Kind(nil), figure.All...),
	}
}

// Validate checks every precondition of a render pass. The viewport is
// checked first, then the count, the density and the kind selection.
func (r Request) Validate() error {
	if err := r.Viewport.Validate(); err != nil {
		return err
	}
	if r.Count < 0 {
		return errors.New(errors.ErrCodeInvalidCount, "count must not be negative, got %d", r.Count)
	}
	if err := errors.ValidateFinite(errors.ErrCodeOutOfRangeDensity, "density", r.Density); err != nil {
		return err
	}
	if r.Density < 0 || r.Density > 1 {
		return errors.New(errors.ErrCodeOutOfRangeDensity, "density must be between 0 and 1, got %g", r.Density)
	}
	if len(r.Kinds) == 0 {
		return errors.New(errors.ErrCodeEmptyTypeSelection, "select at least one figure type")
	}
	for _, k := range r.Kinds {
		if !k.Valid() {
			return errors.New(errors.ErrCodeInvalidFigureType, "unknown figure type %d", uint8(k))
		}
	}
	return nil
}
