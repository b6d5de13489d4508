package sink

import (
	"encoding/json"

	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/render/draw"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonOutput)

// WithJSONSeed records the seed the drawing was generated from, enabling
// reproducible re-rendering.
func WithJSONSeed(seed uint64) JSONOption { return func(o *jsonOutput) { o.Seed = seed } }

// WithJSONRequest records the render request alongside the commands. Any
// JSON-encodable value is accepted.
func WithJSONRequest(req any) JSONOption { return func(o *jsonOutput) { o.Request = req } }

type jsonOutput struct {
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Seed     uint64         `json:"seed,omitempty"`
	Request  any            `json:"request,omitempty"`
	Commands *draw.Recorder `json:"commands"`
}

// RenderJSON encodes rec and its surface as an indented JSON document.
func RenderJSON(rec *draw.Recorder, s geom.Surface, opts ...JSONOption) ([]byte, error) {
	out := jsonOutput{Width: s.Width, Height: s.Height, Commands: rec}
	for _, opt := range opts {
		opt(&out)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
	}
	return data, nil
}

// Drawing is a decoded JSON artifact.
type Drawing struct {
	Surface  geom.Surface
	Seed     uint64
	Recorder *draw.Recorder
}

// ReadJSON decodes a document produced by RenderJSON. The request, if any,
// is left undecoded.
func ReadJSON(data []byte) (*Drawing, error) {
	var in struct {
		Width    float64         `json:"width"`
		Height   float64         `json:"height"`
		Seed     uint64          `json:"seed"`
		Commands json.RawMessage `json:"commands"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode drawing")
	}
	rec := draw.NewRecorder()
	if len(in.Commands) > 0 {
		if err := json.Unmarshal(in.Commands, rec); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode commands")
		}
	}
	d := &Drawing{Surface: geom.Surface{Width: in.Width, Height: in.Height}, Seed: in.Seed, Recorder: rec}
	if err := d.Surface.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
