package term

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mixmate/internal/bottles"
)

var sample = bottles.BottleSet{
	{bottles.ColorMate, bottles.ColorWinter},
	{},
	{bottles.ColorCola},
}

func TestRenderPlain(t *testing.T) {
	got := Render(sample, 2, DefaultOptions())
	want := strings.Join([]string{
		"|W| | | | |",
		"|M| | | |C|",
		"  1   2   3",
	}, "\n")
	if got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderMarksSource(t *testing.T) {
	opts := DefaultOptions()
	opts.Source = 2

	lines := strings.Split(Render(sample, 2, opts), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[3] != "         ^" {
		t.Errorf("marker line = %q", lines[3])
	}

	opts.Source = 7
	if n := len(strings.Split(Render(sample, 2, opts), "\n")); n != 3 {
		t.Errorf("out-of-range source should not draw a marker, got %d lines", n)
	}
}

func TestRenderColorKeepsLayout(t *testing.T) {
	plain := strings.Split(Render(sample, 2, DefaultOptions()), "\n")

	opts := Options{
		Source: 0,
		Color:  true,
		Hex:    func(bottles.Color) string { return "#FF004C" },
	}
	colored := strings.Split(Render(sample, 2, opts), "\n")
	if len(colored) != len(plain)+1 {
		t.Fatalf("expected %d lines, got %d", len(plain)+1, len(colored))
	}
	for i := range plain {
		if w := lipgloss.Width(colored[i]); w != len(plain[i]) {
			t.Errorf("line %d width = %d, want %d", i, w, len(plain[i]))
		}
	}
}

func TestRenderColorWithoutHexFallsBackToPlain(t *testing.T) {
	opts := DefaultOptions()
	opts.Color = true
	if got, want := Render(sample, 2, opts), Render(sample, 2, DefaultOptions()); got != want {
		t.Errorf("expected plain output without Hex, got\n%s", got)
	}
}

func TestRenderTallBottles(t *testing.T) {
	set := bottles.BottleSet{{bottles.ColorZero}}
	lines := strings.Split(Render(set, 4, DefaultOptions()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected capacity rows plus numbers, got %d lines", len(lines))
	}
	if lines[3] != "|Z|" || lines[0] != "| |" {
		t.Errorf("unexpected rows: %q", lines)
	}
}

func TestLegend(t *testing.T) {
	got := Legend(3, DefaultOptions())
	if got != "M=mate W=winter C=cola" {
		t.Errorf("Legend(3) = %q", got)
	}
}

func TestStatus(t *testing.T) {
	if got := Status(12, 3, 8); got != "moves: 12  sorted: 3/8" {
		t.Errorf("Status() = %q", got)
	}
}
