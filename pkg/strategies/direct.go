package strategies

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pojntfx/page-compare-benchmark/pkg/pages"
	"github.com/pojntfx/page-compare-benchmark/pkg/timer"
)

var ErrInvalidCompareLength = errors.New("invalid compare length")

// Equal reports whether the first n bytes of a and b are equal. n is clamped
// to the shorter buffer.
func Equal(a, b []byte, n int) bool {
	if n < 0 {
		n = 0
	}

	if len(a) < n {
		n = len(a)
	}

	if len(b) < n {
		n = len(b)
	}

	return bytes.Equal(a[:n], b[:n])
}

// DirectStrategy compares a prefix of both pages. By default the prefix has
// the length of a digest, not of the page.
type DirectStrategy struct {
	length int
	opts   *Options
}

func NewDirect(length int, opts *Options) (*DirectStrategy, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCompareLength, length)
	}

	return &DirectStrategy{
		length: length,
		opts:   opts.withDefaults(),
	}, nil
}

func (s *DirectStrategy) Name() string {
	return "direct"
}

func (s *DirectStrategy) Run(gen *pages.Generator, size int) Result {
	page1, page2, err := generate(gen, size)
	if err != nil {
		return Result{Err: err}
	}

	match := false
	d, err := timer.Measure(s.opts.Clock, func() {
		match = Equal(page1.Data, page2.Data, s.length)
	})

	release(page1, page2)

	if err != nil {
		return Result{Err: err}
	}

	report(s.opts.Output, match, "Page bytes match. Data is unchanged.", "Page bytes do not match. Data may have been modified.")

	return Result{
		Match:    match,
		Duration: d,
	}
}
