package server

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

// renderRequest is the wire form of a render. Nil fields keep the server
// default.
type renderRequest struct {
	Count       *int     `json:"count,omitempty"`
	XMin        *float64 `json:"x_min,omitempty"`
	XMax        *float64 `json:"x_max,omitempty"`
	YMin        *float64 `json:"y_min,omitempty"`
	YMax        *float64 `json:"y_max,omitempty"`
	Density     *float64 `json:"density,omitempty"`
	ShowGrid    *bool    `json:"show_grid,omitempty"`
	Kinds       []string `json:"kinds,omitempty"`
	Seed        *uint64  `json:"seed,omitempty"`
	Width       *float64 `json:"width,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	StrokeWidth *float64 `json:"stroke_width,omitempty"`
	Format      string   `json:"format,omitempty"`
	Download    bool     `json:"download,omitempty"`
}

func parseQuery(q url.Values) (renderRequest, error) {
	var req renderRequest
	var err error
	if req.Count, err = queryInt(q, "count"); err != nil {
		return req, err
	}
	floats := []struct {
		name string
		dst  **float64
	}{
		{"x_min", &req.XMin},
		{"x_max", &req.XMax},
		{"y_min", &req.YMin},
		{"y_max", &req.YMax},
		{"density", &req.Density},
		{"width", &req.Width},
		{"height", &req.Height},
		{"stroke_width", &req.StrokeWidth},
	}
	for _, f := range floats {
		if *f.dst, err = queryFloat(q, f.name); err != nil {
			return req, err
		}
	}
	if req.ShowGrid, err = queryBool(q, "show_grid"); err != nil {
		return req, err
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", v)
		}
		req.Seed = &seed
	}
	if v := q.Get("kinds"); v != "" {
		req.Kinds = strings.Split(v, ",")
	}
	req.Format = q.Get("format")
	download, err := queryBool(q, "download")
	if err != nil {
		return req, err
	}
	req.Download = download != nil && *download
	return req, nil
}

func queryInt(q url.Values, name string) (*int, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		code := errors.ErrCodeInvalidInput
		if name == "count" {
			code = errors.ErrCodeInvalidCount
		}
		return nil, errors.New(code, "%s must be an integer, got %q", name, v)
	}
	return &n, nil
}

func queryFloat(q url.Values, name string) (*float64, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", name, v)
	}
	return &f, nil
}

func queryBool(q url.Values, name string) (*bool, error) {
	v := q.Get(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be a boolean, got %q", name, v)
	}
	return &b, nil
}

// apply overlays req on defaults and returns the options together with
// the single format the response carries.
func (req renderRequest) apply(defaults pipeline.Options) (pipeline.Options, string, error) {
	opts := pipeline.Options{
		Count:       defaults.Count,
		Viewport:    defaults.Viewport,
		Density:     defaults.Density,
		ShowGrid:    defaults.ShowGrid,
		Kinds:       append([]figure.Kind(nil), defaults.Kinds...),
		Seed:        defaults.Seed,
		Width:       defaults.Width,
		Height:      defaults.Height,
		StrokeWidth: defaults.StrokeWidth,
	}

	set(&opts.Count, req.Count)
	set(&opts.Viewport.XMin, req.XMin)
	set(&opts.Viewport.XMax, req.XMax)
	set(&opts.Viewport.YMin, req.YMin)
	set(&opts.Viewport.YMax, req.YMax)
	set(&opts.Density, req.Density)
	set(&opts.ShowGrid, req.ShowGrid)
	set(&opts.Seed, req.Seed)
	set(&opts.Width, req.Width)
	set(&opts.Height, req.Height)
	set(&opts.StrokeWidth, req.StrokeWidth)

	switch {
	case req.Kinds == nil:
	case len(req.Kinds) == 0:
		opts.Kinds = nil
	default:
		kinds, err := figure.ParseKinds(strings.Join(req.Kinds, ","))
		if err != nil {
			return pipeline.Options{}, "", err
		}
		opts.Kinds = kinds
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = pipeline.FormatPNG
		if len(defaults.Formats) > 0 {
			format = defaults.Formats[0]
		}
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, "", err
	}
	opts.Formats = []string{format}
	return opts, format, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
