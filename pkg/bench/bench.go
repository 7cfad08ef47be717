package bench

import (
	"errors"
	"log"
	"time"

	"github.com/pojntfx/page-compare-benchmark/pkg/pages"
	"github.com/pojntfx/page-compare-benchmark/pkg/strategies"
)

// DefaultIterations is the number of trials run when none are configured
const DefaultIterations = 100000

var (
	ErrNoStrategies      = errors.New("no strategies to run")
	ErrInvalidIterations = errors.New("iterations must be at least 1")
)

// Totals accumulates the trials of a single strategy.
type Totals struct {
	Name     string
	Total    time.Duration
	Samples  int64
	Failures int64
	Matches  int64
}

// Mean is the average duration of the successful trials.
func (t Totals) Mean() time.Duration {
	if t.Samples == 0 {
		return 0
	}

	return t.Total / time.Duration(t.Samples)
}

func (t *Totals) Add(r strategies.Result) {
	if r.Err != nil {
		t.Failures++

		return
	}

	t.Samples++
	t.Total += r.Duration

	if r.Match {
		t.Matches++
	}
}

type Summary struct {
	Iterations int
	PageSize   int
	Totals     []Totals
}

type Runner struct {
	Strategies []strategies.Strategy
	Generator  *pages.Generator
	PageSize   int
	Iterations int

	Verbose bool
}

func (r *Runner) Run() (*Summary, error) {
	if len(r.Strategies) == 0 {
		return nil, ErrNoStrategies
	}

	if r.Iterations < 1 {
		return nil, ErrInvalidIterations
	}

	if r.PageSize < 0 {
		return nil, pages.ErrInvalidSize
	}

	summary := &Summary{
		Iterations: r.Iterations,
		PageSize:   r.PageSize,
		Totals:     make([]Totals, len(r.Strategies)),
	}
	for i, s := range r.Strategies {
		summary.Totals[i].Name = s.Name()
	}

	before := time.Now()

	for i := 0; i < r.Iterations; i++ {
		for j, s := range r.Strategies {
			summary.Totals[j].Add(s.Run(r.Generator, r.PageSize))
		}
	}

	if r.Verbose {
		log.Printf("Ran %v iterations of %v strategies in %v", r.Iterations, len(r.Strategies), time.Since(before))
	}

	return summary, nil
}
