package draw

import (
	"encoding/json"
	"slices"
)

// Op names recorded by [Recorder].
const (
	OpClear     = "clear"
	OpSetStroke = "stroke_color"
	OpLine      = "line"
	OpOval      = "oval"
	OpRect      = "rect"
	OpPolygon   = "polygon"
	OpPath      = "path"
)

// Command is one recorded draw operation.
type Command struct {
	Op     string  `json:"op"`
	Color  *Color  `json:"color,omitempty"`
	Points []Point `json:"points,omitempty"`
	Box    *Box    `json:"box,omitempty"`
}

// Recorder is a Sink that stores commands instead of drawing them.
// A path is recorded as a single "path" command once StrokePath is called.
type Recorder struct {
	Commands []Command
	path     []Point
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Clear(c Color) {
	r.Commands = append(r.Commands, Command{Op: OpClear, Color: &c})
}

func (r *Recorder) SetStroke(c Color) {
	r.Commands = append(r.Commands, Command{Op: OpSetStroke, Color: &c})
}

func (r *Recorder) Line(from, to Point) {
	r.Commands = append(r.Commands, Command{Op: OpLine, Points: []Point{from, to}})
}

func (r *Recorder) Oval(box Box) {
	r.Commands = append(r.Commands, Command{Op: OpOval, Box: &box})
}

func (r *Recorder) Rect(box Box) {
	r.Commands = append(r.Commands, Command{Op: OpRect, Box: &box})
}

func (r *Recorder) Polygon(pts []Point) {
	r.Commands = append(r.Commands, Command{Op: OpPolygon, Points: slices.Clone(pts)})
}

func (r *Recorder) BeginPath(p Point) {
	r.path = append(r.path[:0], p)
}

func (r *Recorder) LineTo(p Point) {
	r.path = append(r.path, p)
}

func (r *Recorder) StrokePath() {
	if len(r.path) == 0 {
		return
	}
	r.Commands = append(r.Commands, Command{Op: OpPath, Points: slices.Clone(r.path)})
	r.path = r.path[:0]
}

// Count returns how many recorded commands have the given op.
func (r *Recorder) Count(op string) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Replay issues every recorded command to s, in order. Commands missing
// their operands are skipped.
func (r *Recorder) Replay(s Sink) {
	for _, c := range r.Commands {
		if !c.complete() {
			continue
		}
		switch c.Op {
		case OpClear:
			s.Clear(*c.Color)
		case OpSetStroke:
			s.SetStroke(*c.Color)
		case OpLine:
			s.Line(c.Points[0], c.Points[1])
		case OpOval:
			s.Oval(*c.Box)
		case OpRect:
			s.Rect(*c.Box)
		case OpPolygon:
			s.Polygon(c.Points)
		case OpPath:
			s.BeginPath(c.Points[0])
			for _, p := range c.Points[1:] {
				s.LineTo(p)
			}
			s.StrokePath()
		}
	}
}

func (c Command) complete() bool {
	switch c.Op {
	case OpClear, OpSetStroke:
		return c.Color != nil
	case OpLine:
		return len(c.Points) == 2
	case OpOval, OpRect:
		return c.Box != nil
	case OpPolygon, OpPath:
		return len(c.Points) > 0
	}
	return false
}

// MarshalJSON encodes the recorded command list.
func (r *Recorder) MarshalJSON() ([]byte, error) {
	cmds := r.Commands
	if cmds == nil {
		cmds = []Command{}
	}
	return json.Marshal(cmds)
}

// UnmarshalJSON decodes a command list produced by MarshalJSON.
func (r *Recorder) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Commands)
}

var _ Sink = (*Recorder)(nil)
