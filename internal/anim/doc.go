// Package anim renders terminal busy animations over a tick.Gate.
//
// An Animator owns a gate and a Policy. Each fire of the gate renders one
// frame, writes it followed by a carriage return so the next frame
// overwrites it in place, and flushes the writer. Polls that do not fire
// write nothing.
//
// Two policies are provided:
//   - Spinner: one glyph per frame, counter step 1
//   - Dotter: a 4-glyph window over a circular template, counter step 4
package anim
