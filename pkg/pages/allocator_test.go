package pages

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocators(t *testing.T) {
	for _, name := range availableAllocators {
		t.Run(name, func(t *testing.T) {
			alloc, err := ParseAllocator(name)
			require.NoError(t, err)
			require.Equal(t, name, alloc.Name())

			for _, size := range []int{0, 1, DefaultSize, 3 * DefaultSize} {
				p, err := alloc.Allocate(size)
				require.NoError(t, err, "size %d", size)
				require.Len(t, p.Data, size)

				for i := range p.Data {
					p.Data[i] = byte(i)
				}

				require.NoError(t, p.Release())
				require.Error(t, p.Release())
			}

			_, err = alloc.Allocate(-1)
			require.ErrorIs(t, err, ErrInvalidSize)
		})
	}
}

func TestHeapAllocatorOversizedPage(t *testing.T) {
	p, err := HeapAllocator{}.Allocate(math.MaxInt64)
	require.ErrorIs(t, err, ErrAllocationFailed)
	require.Nil(t, p)
}

func TestParseAllocatorUnknown(t *testing.T) {
	_, err := ParseAllocator("tmpfs")
	require.ErrorIs(t, err, ErrUnknownAllocator)
}
