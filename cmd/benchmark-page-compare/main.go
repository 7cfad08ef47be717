package main

import (
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"github.com/pojntfx/page-compare-benchmark/pkg/bench"
	"github.com/pojntfx/page-compare-benchmark/pkg/digest"
	"github.com/pojntfx/page-compare-benchmark/pkg/pages"
	"github.com/pojntfx/page-compare-benchmark/pkg/strategies"
	"github.com/pojntfx/page-compare-benchmark/pkg/timer"
	"github.com/pojntfx/page-compare-benchmark/pkg/utils"
)

func main() {
	iterations := flag.Int("iterations", bench.DefaultIterations, "Amount of times to run every strategy")
	pageSize := flag.Int("page-size", pages.DefaultSize, "Page size to use")
	compareLength := flag.Int("compare-length", digest.Size, "Amount of bytes to compare in the direct strategy")
	hash := flag.String("hash", digest.SHA256, "Hash to use in the hash strategy (one of "+strings.Join(digest.Names(), ", ")+")")
	xorMode := flag.String("xor-mode", strategies.XORLast.String(), "XOR reduction to use (last keeps only the final byte pair, accumulate ORs all of them)")
	allocator := flag.String("allocator", pages.AllocatorHeap, "Allocator to use for pages (heap, mmap or mmap-go)")
	clock := flag.String("clock", timer.ClockCPU, "Clock to measure with (cpu for process CPU time, wall for monotonic wall time)")
	seed := flag.Int64("seed", 0, "Seed for the page contents; pass in 0 to seed from the current time")
	quiet := flag.Bool("quiet", false, "Whether to skip printing the result of every comparison")
	jsonOutput := flag.Bool("json", false, "Whether to print the summary as JSON")
	verbose := flag.Bool("verbose", false, "Whether to enable verbose logging")

	flag.Parse()

	h, err := digest.Parse(*hash)
	if err != nil {
		panic(err)
	}

	mode, err := strategies.ParseXORMode(*xorMode)
	if err != nil {
		panic(err)
	}

	alloc, err := pages.ParseAllocator(*allocator)
	if err != nil {
		panic(err)
	}

	clk, err := timer.ParseClock(*clock)
	if err != nil {
		panic(err)
	}

	var output io.Writer = os.Stdout
	if *quiet {
		output = io.Discard
	}

	opts := &strategies.Options{
		Clock:  clk,
		Output: output,
	}

	direct, err := strategies.NewDirect(*compareLength, opts)
	if err != nil {
		panic(err)
	}

	if *verbose {
		log.Printf("Comparing %v byte pages %v times with the %v clock", *pageSize, *iterations, clk.Name())
		log.Printf("Using the %v allocator, %v XOR reduction, direct compare of %v bytes and %v", alloc.Name(), mode, *compareLength, h.Name())
	}

	runner := &bench.Runner{
		Strategies: []strategies.Strategy{
			strategies.NewXOR(mode, opts),
			direct,
			strategies.NewHash(h, opts),
		},
		Generator:  pages.NewGenerator(alloc, *seed),
		PageSize:   *pageSize,
		Iterations: *iterations,

		Verbose: *verbose,
	}

	summary, err := runner.Run()
	if err != nil {
		panic(err)
	}

	if *jsonOutput {
		if err := utils.EncodeJSON(os.Stdout, summary); err != nil {
			panic(err)
		}

		return
	}

	if err := utils.WriteReport(os.Stdout, summary); err != nil {
		panic(err)
	}
}
