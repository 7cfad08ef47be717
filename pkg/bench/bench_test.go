package bench

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pojntfx/page-compare-benchmark/pkg/digest"
	"github.com/pojntfx/page-compare-benchmark/pkg/pages"
	"github.com/pojntfx/page-compare-benchmark/pkg/strategies"
	"github.com/pojntfx/page-compare-benchmark/pkg/timer"
	"github.com/stretchr/testify/require"
)

type scriptedStrategy struct {
	results []strategies.Result
	calls   int
}

func (s *scriptedStrategy) Name() string {
	return "scripted"
}

func (s *scriptedStrategy) Run(gen *pages.Generator, size int) strategies.Result {
	r := s.results[s.calls%len(s.results)]
	s.calls++

	return r
}

func newRunner(t testing.TB, out *bytes.Buffer, clock timer.Clock, iterations int) *Runner {
	h, err := digest.Parse(digest.SHA256)
	require.NoError(t, err)

	opts := &strategies.Options{
		Clock:  clock,
		Output: out,
	}

	direct, err := strategies.NewDirect(digest.Size, opts)
	require.NoError(t, err)

	return &Runner{
		Strategies: []strategies.Strategy{
			strategies.NewXOR(strategies.XORLast, opts),
			direct,
			strategies.NewHash(h, opts),
		},
		Generator:  pages.NewGenerator(pages.HeapAllocator{}, 1),
		PageSize:   pages.DefaultSize,
		Iterations: iterations,
	}
}

func TestRunSingleIteration(t *testing.T) {
	out := &bytes.Buffer{}

	summary, err := newRunner(t, out, timer.ProcessCPUClock{}, 1).Run()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		require.NotContains(t, line, "not")
	}

	require.Len(t, summary.Totals, 3)
	require.Equal(t, []string{"xor", "direct", "hash"}, []string{summary.Totals[0].Name, summary.Totals[1].Name, summary.Totals[2].Name})
	for _, total := range summary.Totals {
		require.EqualValues(t, 1, total.Samples)
		require.EqualValues(t, 1, total.Matches)
		require.Zero(t, total.Failures)
		require.GreaterOrEqual(t, int64(total.Mean()), int64(0))
	}
}

func TestRunAccumulatesAllIterations(t *testing.T) {
	s := &scriptedStrategy{
		results: []strategies.Result{
			{Match: true, Duration: 2 * time.Microsecond},
			{Match: true, Duration: 4 * time.Microsecond},
		},
	}

	summary, err := (&Runner{
		Strategies: []strategies.Strategy{s},
		Iterations: 10,
	}).Run()
	require.NoError(t, err)

	require.Equal(t, 10, s.calls)
	require.Equal(t, 30*time.Microsecond, summary.Totals[0].Total)
	require.Equal(t, 3*time.Microsecond, summary.Totals[0].Mean())
}

func TestRunSkipsFailedTrials(t *testing.T) {
	s := &scriptedStrategy{
		results: []strategies.Result{
			{Match: true, Duration: time.Microsecond},
			{Err: errors.New("memory allocation failed")},
		},
	}

	summary, err := (&Runner{
		Strategies: []strategies.Strategy{s},
		Iterations: 4,
	}).Run()
	require.NoError(t, err)

	total := summary.Totals[0]
	require.EqualValues(t, 2, total.Samples)
	require.EqualValues(t, 2, total.Failures)
	require.Equal(t, time.Microsecond, total.Mean())
}

func TestRunCountsOversizedPagesAsFailures(t *testing.T) {
	out := &bytes.Buffer{}

	r := newRunner(t, out, timer.NewWallClock(), 2)
	r.PageSize = math.MaxInt64

	summary, err := r.Run()
	require.NoError(t, err)
	require.Empty(t, out.String())

	for _, total := range summary.Totals {
		require.Zero(t, total.Samples)
		require.EqualValues(t, 2, total.Failures)
		require.Zero(t, total.Mean())
	}
}

func TestMeanWithoutSamples(t *testing.T) {
	require.Zero(t, Totals{Failures: 3}.Mean())
}

func TestRunRejectsInvalidConfiguration(t *testing.T) {
	_, err := (&Runner{}).Run()
	require.ErrorIs(t, err, ErrNoStrategies)

	r := newRunner(t, &bytes.Buffer{}, timer.NewWallClock(), 0)
	_, err = r.Run()
	require.ErrorIs(t, err, ErrInvalidIterations)

	r = newRunner(t, &bytes.Buffer{}, timer.NewWallClock(), 1)
	r.PageSize = -1
	_, err = r.Run()
	require.ErrorIs(t, err, pages.ErrInvalidSize)
}

func TestHashIsSlowerThanDirectCompare(t *testing.T) {
	if testing.Short() {
		t.Skip("timing trend needs many iterations")
	}

	summary, err := newRunner(t, &bytes.Buffer{}, timer.NewWallClock(), 2000).Run()
	require.NoError(t, err)

	direct, hash := summary.Totals[1], summary.Totals[2]
	require.Greater(t, int64(hash.Mean()), int64(direct.Mean()))
}
