package strategies

import (
	"errors"
	"fmt"

	"github.com/pojntfx/page-compare-benchmark/pkg/pages"
	"github.com/pojntfx/page-compare-benchmark/pkg/timer"
)

type XORMode int

const (
	// XORLast keeps only the XOR of the final byte pair
	XORLast XORMode = iota
	// XORAccumulate ORs together the XOR of every byte pair
	XORAccumulate
)

var ErrUnknownXORMode = errors.New("unknown XOR mode")

func (m XORMode) String() string {
	switch m {
	case XORLast:
		return "last"
	case XORAccumulate:
		return "accumulate"
	default:
		return fmt.Sprintf("XORMode(%d)", int(m))
	}
}

func ParseXORMode(name string) (XORMode, error) {
	switch name {
	case XORLast.String():
		return XORLast, nil
	case XORAccumulate.String():
		return XORAccumulate, nil
	default:
		return 0, fmt.Errorf("%w: %q, expected %q or %q", ErrUnknownXORMode, name, XORLast, XORAccumulate)
	}
}

// XOR walks both buffers pair by pair. The result is zero if the buffers are
// considered equal under mode.
func XOR(a, b []byte, mode XORMode) byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	a, b = a[:n], b[:n]

	result := byte(0)
	if mode == XORAccumulate {
		for i := range a {
			result |= a[i] ^ b[i]
		}

		return result
	}

	for i := range a {
		result = a[i] ^ b[i]
	}

	return result
}

type XORStrategy struct {
	mode XORMode
	opts *Options
}

func NewXOR(mode XORMode, opts *Options) *XORStrategy {
	return &XORStrategy{
		mode: mode,
		opts: opts.withDefaults(),
	}
}

func (s *XORStrategy) Name() string {
	return "xor"
}

func (s *XORStrategy) Run(gen *pages.Generator, size int) Result {
	page1, page2, err := generate(gen, size)
	if err != nil {
		return Result{Err: err}
	}

	result := byte(0)
	d, err := timer.Measure(s.opts.Clock, func() {
		result = XOR(page1.Data, page2.Data, s.mode)
	})

	release(page1, page2)

	if err != nil {
		return Result{Err: err}
	}

	match := result == 0
	report(s.opts.Output, match, "XOR result is all zeros.", "XOR result is not all zeros.")

	return Result{
		Match:    match,
		Duration: d,
	}
}
