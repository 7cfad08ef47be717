package strategies

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/pojntfx/page-compare-benchmark/pkg/pages"
	"github.com/pojntfx/page-compare-benchmark/pkg/timer"
)

// Result is the outcome of one trial of a strategy. Duration is only valid if
// Err is nil.
type Result struct {
	Match    bool
	Duration time.Duration
	Err      error
}

// Strategy compares two freshly generated pages and times the comparison.
type Strategy interface {
	Name() string
	Run(gen *pages.Generator, size int) Result
}

type Options struct {
	Clock  timer.Clock
	Output io.Writer
}

func (o *Options) withDefaults() *Options {
	opts := Options{}
	if o != nil {
		opts = *o
	}

	if opts.Clock == nil {
		opts.Clock = timer.ProcessCPUClock{}
	}

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &opts
}

func generate(gen *pages.Generator, size int) (*pages.Page, *pages.Page, error) {
	page1, page2, err := gen.Generate(size)
	if err != nil {
		log.Println("Memory allocation failed:", err)

		return nil, nil, err
	}

	return page1, page2, nil
}

func release(ps ...*pages.Page) {
	for _, p := range ps {
		if err := p.Release(); err != nil {
			log.Println("Could not release page:", err)
		}
	}
}

func report(out io.Writer, match bool, onMatch, onMismatch string) {
	line := onMismatch
	if match {
		line = onMatch
	}

	if _, err := fmt.Fprintln(out, line); err != nil {
		log.Println("Could not write comparison result:", err)
	}
}
