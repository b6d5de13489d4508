package figure

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/shapescatter/pkg/errors"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"line", Line, false},
		{"Circle", Circle, false},
		{" RECTANGLE ", Rectangle, false},
		{"triangle", Triangle, false},
		{"parabola", Parabola, false},
		{"trapezoid", Trapezoid, false},
		{"hexagon", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, errors.ErrCodeInvalidFigureType) {
					t.Errorf("code = %v", errors.GetCode(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		want     []Kind
		wantCode errors.Code
	}{
		{"empty is all", "", All, ""},
		{"all keyword", "ALL", All, ""},
		{"single", "circle", []Kind{Circle}, ""},
		{"list", "triangle,line", []Kind{Triangle, Line}, ""},
		{"dedupe", "line,line,circle", []Kind{Line, Circle}, ""},
		{"only commas", ",,", nil, errors.ErrCodeEmptyTypeSelection},
		{"unknown", "line,star", nil, errors.ErrCodeInvalidFigureType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKinds(tt.in)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("ParseKinds(%q) error = %v, want code %v", tt.in, err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKinds(%q) error = %v", tt.in, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseKinds(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseKinds(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseKindsAllIsACopy(t *testing.T) {
	kinds, _ := ParseKinds("")
	kinds[0] = Trapezoid
	if All[0] != Line {
		t.Fatal("ParseKinds returned the shared All slice")
	}
}

func TestKindText(t *testing.T) {
	data, err := json.Marshal([]Kind{Parabola, Line})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `["parabola","line"]` {
		t.Errorf("Marshal = %s", data)
	}

	var back []Kind
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if len(back) != 2 || back[0] != Parabola || back[1] != Line {
		t.Errorf("Unmarshal = %v", back)
	}

	if _, err := Kind(99).MarshalText(); err == nil {
		t.Error("MarshalText on invalid kind should fail")
	}
}

func TestKindLabels(t *testing.T) {
	for _, k := range All {
		if k.Label() == "" || k.String() == "" {
			t.Errorf("kind %d has empty name or label", k)
		}
	}
	if Kind(99).Valid() {
		t.Error("Kind(99).Valid() = true")
	}
}
