//go:build !amd64

package clock

import "fmt"

var errTSCNotSupported = fmt.Errorf("%w: TSC requires amd64 architecture", ErrClockUnavailable)

// TSC is a stub for non-amd64 architectures.
// Use Mono instead for cross-platform code.
type TSC struct{}

// CalibrateTSC returns an error on non-amd64 architectures.
func CalibrateTSC() (float64, error) {
	return 0, errTSCNotSupported
}

// NewTSC returns an error on non-amd64 architectures.
func NewTSC() (*TSC, error) {
	return nil, errTSCNotSupported
}

// NewTSCWithRatio returns an error on non-amd64 architectures.
func NewTSCWithRatio(cyclesPerNs float64) (*TSC, error) {
	return nil, errTSCNotSupported
}

// Now always returns 0 on the stub implementation.
func (t *TSC) Now() Sample { return 0 }

// CyclesPerNs returns 0 on the stub implementation.
func (t *TSC) CyclesPerNs() float64 { return 0 }
