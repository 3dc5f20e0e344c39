package anim

import "github.com/muesli/termenv"

// Style is the colour configuration of a frame body.
//
// Style is a value: copy it, never share a pointer. The zero Style renders
// plain text.
type Style struct {
	// Foreground is a termenv colour: an ANSI index ("1".."255") or
	// "#rrggbb". Empty means no colour.
	Foreground string
	Bold       bool
	Profile    termenv.Profile
}

// Plain reports whether s leaves text untouched.
func (s Style) Plain() bool {
	return s.Profile == termenv.Ascii || (s.Foreground == "" && !s.Bold)
}

// Render applies the style to text.
func (s Style) Render(text string) string {
	if s.Plain() {
		return text
	}
	out := s.Profile.String(text)
	if s.Foreground != "" {
		out = out.Foreground(s.Profile.Color(s.Foreground))
	}
	if s.Bold {
		out = out.Bold()
	}
	return out.String()
}
