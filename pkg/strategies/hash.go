package strategies

import (
	"github.com/pojntfx/page-compare-benchmark/pkg/digest"
	"github.com/pojntfx/page-compare-benchmark/pkg/pages"
	"github.com/pojntfx/page-compare-benchmark/pkg/timer"
)

// Verify hashes page and compares the result against a known digest.
func Verify(h digest.Hasher, known digest.Digest, page []byte) bool {
	return h.Sum(page) == known
}

// HashStrategy hashes the second page and compares it to the digest of the
// first. The first digest is treated as already known and is not timed.
type HashStrategy struct {
	hasher digest.Hasher
	opts   *Options
}

func NewHash(hasher digest.Hasher, opts *Options) *HashStrategy {
	return &HashStrategy{
		hasher: hasher,
		opts:   opts.withDefaults(),
	}
}

func (s *HashStrategy) Name() string {
	return "hash"
}

func (s *HashStrategy) Run(gen *pages.Generator, size int) Result {
	page1, page2, err := generate(gen, size)
	if err != nil {
		return Result{Err: err}
	}

	known := s.hasher.Sum(page1.Data)

	match := false
	d, err := timer.Measure(s.opts.Clock, func() {
		match = Verify(s.hasher, known, page2.Data)
	})

	release(page1, page2)

	if err != nil {
		return Result{Err: err}
	}

	report(s.opts.Output, match, "Hash values match. Data is unchanged.", "Hash values do not match. Data may have been modified.")

	return Result{
		Match:    match,
		Duration: d,
	}
}
