package figure

import (
	"fmt"
	"strings"

	"github.com/matzehuels/shapescatter/pkg/errors"
)

// Kind identifies one of the six figure types.
type Kind uint8

// Figure kinds, in display order.
const (
	Line Kind = iota
	Circle
	Rectangle
	Triangle
	Parabola
	Trapezoid
)

// All lists every kind in display order.
var All = []Kind{Line, Circle, Rectangle, Triangle, Parabola, Trapezoid}

var kindNames = [...]string{
	Line:      "line",
	Circle:    "circle",
	Rectangle: "rectangle",
	Triangle:  "triangle",
	Parabola:  "parabola",
	Trapezoid: "trapezoid",
}

var kindLabels = [...]string{
	Line:      "Line",
	Circle:    "Circle",
	Rectangle: "Rectangle",
	Triangle:  "Triangle",
	Parabola:  "Parabola",
	Trapezoid: "Trapezoid",
}

// Valid reports whether k is one of the six defined kinds.
func (k Kind) Valid() bool { return int(k) < len(kindNames) }

// String returns the lowercase name.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Label returns the display label.
func (k Kind) Label() string {
	if !k.Valid() {
		return k.String()
	}
	return kindLabels[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidFigureType, "unknown figure type %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind parses a kind name, ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidFigureType,
		"unknown figure type %q (must be one of: %s)", s, strings.Join(kindNames[:], ", "))
}

// ParseKinds parses a comma-separated list of kind names. "all" (or an
// empty string) selects every kind. Duplicates are collapsed, keeping the
// first occurrence.
func ParseKinds(s string) ([]Kind, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return append([]Kind(nil), All...), nil
	}
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyTypeSelection, "select at least one figure type")
	}
	return kinds, nil
}

// Names returns the lowercase names of kinds.
func Names(kinds []Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}
