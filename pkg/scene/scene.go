package scene

import (
	"math/rand/v2"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/figure"
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
)

// Observer is called once per figure, after it has been issued to the sink.
type Observer func(index int, p Placement)

// Option configures a render pass.
type Option func(*renderConfig)

type renderConfig struct {
	observers []Observer
}

// WithObserver registers fn to receive every placement of the pass.
func WithObserver(fn Observer) Option {
	return func(c *renderConfig) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// NewRand returns the generator Render expects for a given seed. Equal
// seeds yield equal drawings.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Render draws req onto sink. Nothing is issued to the sink unless the
// request, the surface and the generator are all valid.
func Render(sink draw.Sink, s geom.Surface, req Request, rng *rand.Rand, opts ...Option) error {
	if sink == nil {
		return errors.New(errors.ErrCodeInvalidInput, "draw sink is nil")
	}
	if rng == nil {
		return errors.New(errors.ErrCodeInvalidInput, "random source is nil")
	}
	if err := req.Validate(); err != nil {
		return err
	}
	m, err := geom.NewMapper(req.Viewport, s)
	if err != nil {
		return err
	}

	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	sink.Clear(draw.White)
	if req.ShowGrid {
		DrawGrid(sink, m)
	}

	for i := range req.Count {
		p := Place(req, rng)
		prim, err := figure.Generate(p.Kind, p.Center, p.Size, m)
		if err != nil {
			return err
		}
		sink.SetStroke(p.Color)
		figure.Issue(sink, prim)
		for _, obs := range cfg.observers {
			obs(i, p)
		}
	}
	return nil
}
