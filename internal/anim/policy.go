package anim

import "strings"

const (
	// SpinnerGlyphs is the default Spinner rotation.
	SpinnerGlyphs = `/-\|`

	// DotterTemplate is the default Dotter template, read as a ring.
	DotterTemplate = "... .. .. .. .... .... ."

	// DotterWindow is the number of template glyphs shown per frame.
	DotterWindow = 4
)

// Policy turns a tick counter value into a frame.
type Policy interface {
	// Frame returns the frame body for the counter value before the fire.
	Frame(tick uint64) string

	// Step is how far the counter advances per fire.
	Step() uint64
}

// Spinner rotates through single glyphs.
type Spinner struct {
	glyphs GlyphSequence
}

// NewSpinner returns a Spinner over glyphs, one glyph per rune.
// An empty string selects SpinnerGlyphs.
func NewSpinner(glyphs string) (*Spinner, error) {
	if glyphs == "" {
		glyphs = SpinnerGlyphs
	}
	seq, err := ParseGlyphs(glyphs)
	if err != nil {
		return nil, err
	}
	return &Spinner{glyphs: seq}, nil
}

// Frame returns glyph tick mod len.
func (s *Spinner) Frame(tick uint64) string {
	return s.glyphs.At(tick)
}

// Step returns 1.
func (s *Spinner) Step() uint64 { return 1 }

// Dotter shows a window of DotterWindow glyphs sliding over a template.
// Every glyph of the window is indexed modulo the template length, so a
// window starting near the end wraps to the start.
type Dotter struct {
	template GlyphSequence
}

// NewDotter returns a Dotter over template, one glyph per rune.
// An empty string selects DotterTemplate.
func NewDotter(template string) (*Dotter, error) {
	if template == "" {
		template = DotterTemplate
	}
	seq, err := ParseGlyphs(template)
	if err != nil {
		return nil, err
	}
	return &Dotter{template: seq}, nil
}

// Frame returns the window starting at tick mod len.
func (d *Dotter) Frame(tick uint64) string {
	start := tick % uint64(d.template.Len())
	var b strings.Builder
	for i := uint64(0); i < DotterWindow; i++ {
		b.WriteString(d.template.At(start + i))
	}
	return b.String()
}

// Step returns DotterWindow.
func (d *Dotter) Step() uint64 { return DotterWindow }
