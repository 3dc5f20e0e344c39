package anim

import (
	"errors"
	"fmt"
)

// ErrEmptyGlyphs is returned for a glyph sequence with no glyphs.
var ErrEmptyGlyphs = errors.New("anim: empty glyph sequence")

// GlyphSequence is an ordered, non-empty set of display glyphs.
// Indexing wraps, so no index ever reads past the end.
type GlyphSequence []string

// ParseGlyphs splits s into one glyph per rune.
func ParseGlyphs(s string) (GlyphSequence, error) {
	seq := make(GlyphSequence, 0, len(s))
	for _, r := range s {
		seq = append(seq, string(r))
	}
	if len(seq) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyGlyphs, s)
	}
	return seq, nil
}

// Len returns the number of glyphs.
func (g GlyphSequence) Len() int {
	return len(g)
}

// At returns the glyph at i modulo the sequence length.
func (g GlyphSequence) At(i uint64) string {
	return g[i%uint64(len(g))]
}
