package bottles

import (
	"testing"
)

func TestBottleTopRun(t *testing.T) {
	tests := []struct {
		name   string
		bottle Bottle
		want   int
	}{
		{"empty", Bottle{}, 0},
		{"single", Bottle{R}, 1},
		{"uniform", Bottle{R, R, R}, 3},
		{"run over other", Bottle{B, R, R}, 2},
		{"broken run", Bottle{R, B, R}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bottle.TopRun(); got != tt.want {
				t.Errorf("TopRun(%v) = %d, want %d", tt.bottle, got, tt.want)
			}
		})
	}
}

func TestBottleUniformAndSolved(t *testing.T) {
	tests := []struct {
		name    string
		bottle  Bottle
		uniform bool
		solved  bool
	}{
		{"empty", Bottle{}, true, false},
		{"partial uniform", Bottle{R, R}, true, false},
		{"full uniform", Bottle{R, R, R}, true, true},
		{"full mixed", Bottle{R, B, R}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bottle.IsUniform(); got != tt.uniform {
				t.Errorf("IsUniform() = %v, want %v", got, tt.uniform)
			}
			if got := tt.bottle.IsSolved(3); got != tt.solved {
				t.Errorf("IsSolved(3) = %v, want %v", got, tt.solved)
			}
		})
	}
}

func TestBottleCloneIsIndependent(t *testing.T) {
	b := Bottle{R, B}
	c := b.Clone()
	c[0] = Y

	if b[0] != R {
		t.Error("modifying clone changed original")
	}
}

func TestBottleSetClone(t *testing.T) {
	set := BottleSet{{R, B}, {}, {Y}}
	clone := set.Clone()
	clone[0] = append(clone[0][:1], Y)

	if !set.Equal(BottleSet{{R, B}, {}, {Y}}) {
		t.Errorf("original changed after clone edit: %v", set)
	}
	if clone.Equal(set) {
		t.Error("clone should differ after edit")
	}
}

func TestBottleSetCounts(t *testing.T) {
	set := BottleSet{{R, B, R}, {}, {B}}

	if got := set.Units(); got != 4 {
		t.Errorf("Units() = %d, want 4", got)
	}
	counts := set.CountByColor()
	if counts[R] != 2 || counts[B] != 2 {
		t.Errorf("CountByColor() = %v", counts)
	}
	if got := set.MixedCount(); got != 1 {
		t.Errorf("MixedCount() = %d, want 1", got)
	}
}

func TestBottleSetString(t *testing.T) {
	set := BottleSet{{ColorMate, ColorWinter}, {}}
	if got, want := set.String(), "[MW] []"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := (Move{Source: 0, Target: 2}).String(), "1->3"; got != want {
		t.Errorf("Move.String() = %q, want %q", got, want)
	}
}

func TestParseColor(t *testing.T) {
	for _, c := range Palette(int(NamedColors)) {
		got, ok := ParseColor(c.String())
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.String(), got, ok)
		}
		got, ok = ParseColor(string(c.Char()))
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = %v, %v", string(c.Char()), got, ok)
		}
	}

	if got, ok := ParseColor("flavor-42"); !ok || got != Color(42) {
		t.Errorf("ParseColor(flavor-42) = %v, %v", got, ok)
	}
	if _, ok := ParseColor("lemonade"); ok {
		t.Error("ParseColor should reject unknown names")
	}
	if got := Color(42).String(); got != "flavor-42" {
		t.Errorf("Color(42).String() = %q", got)
	}
}
