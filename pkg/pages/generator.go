package pages

import (
	"log"
	"math/rand"
	"time"
)

// Generator produces pairs of bit-identical pages. It owns its random source,
// which is seeded exactly once.
type Generator struct {
	allocator Allocator
	rng       *rand.Rand
}

// NewGenerator creates a generator backed by allocator. A seed of 0 seeds
// from the wall clock.
func NewGenerator(allocator Allocator, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		allocator: allocator,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Generate allocates two pages of size bytes and fills both with the same
// uniformly distributed bytes.
func (g *Generator) Generate(size int) (*Page, *Page, error) {
	page1, err := g.allocator.Allocate(size)
	if err != nil {
		return nil, nil, err
	}

	page2, err := g.allocator.Allocate(size)
	if err != nil {
		if err := page1.Release(); err != nil {
			log.Println("Could not release page:", err)
		}

		return nil, nil, err
	}

	for i := range page1.Data {
		b := byte(g.rng.Intn(256))

		page1.Data[i] = b
		page2.Data[i] = b
	}

	return page1, page2, nil
}
