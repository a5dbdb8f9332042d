// Package term draws bottle sets as plain or lipgloss-colored text.
package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mixmate/internal/bottles"
)

// Options controls how a set is drawn.
type Options struct {
	Source int                        // Picked bottle (0-based), -1 for none
	Color  bool                       // Color units with lipgloss
	Hex    func(bottles.Color) string // Display code per color, required when Color is set
}

// DefaultOptions draws without color or selection.
func DefaultOptions() Options {
	return Options{Source: -1}
}

var (
	glassStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	numberStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	pickedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
)

// painter renders single units, caching one style per display code.
type painter struct {
	opts   Options
	styles map[string]lipgloss.Style
}

func newPainter(opts Options) *painter {
	if opts.Hex == nil {
		opts.Color = false
	}
	return &painter{opts: opts, styles: make(map[string]lipgloss.Style)}
}

func (p *painter) unit(c bottles.Color) string {
	s := string(c.Char())
	if !p.opts.Color {
		return s
	}
	hex := p.opts.Hex(c)
	style, ok := p.styles[hex]
	if !ok {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
		p.styles[hex] = style
	}
	return style.Render(s)
}

func (p *painter) with(style lipgloss.Style, s string) string {
	if !p.opts.Color {
		return s
	}
	return style.Render(s)
}

// Render draws set as columns of color letters, top unit first, with
// 1-based bottle numbers underneath. A picked bottle is marked with ^.
func Render(set bottles.BottleSet, capacity int, opts Options) string {
	p := newPainter(opts)

	var sb strings.Builder
	for level := capacity - 1; level >= 0; level-- {
		for i, b := range set {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.with(glassStyle, "|"))
			if level < b.Len() {
				sb.WriteString(p.unit(b[level]))
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteString(p.with(glassStyle, "|"))
		}
		sb.WriteByte('\n')
	}

	for i := range set {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.with(numberStyle, fmt.Sprintf("%3d", i+1)))
	}

	if opts.Source >= 0 && opts.Source < len(set) {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", opts.Source*4))
		sb.WriteString(p.with(pickedStyle, " ^"))
	}
	return sb.String()
}

// Legend lists the letter and name of the first n colors.
func Legend(n int, opts Options) string {
	p := newPainter(opts)

	parts := make([]string, 0, n)
	for _, c := range bottles.Palette(n) {
		parts = append(parts, p.unit(c)+"="+c.String())
	}
	return strings.Join(parts, " ")
}

// Status is the one-line summary printed under the bottles.
func Status(moves, solved, total int) string {
	return fmt.Sprintf("moves: %d  sorted: %d/%d", moves, solved, total)
}
