package pages

import (
	"errors"
	"fmt"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sys/unix"
)

const (
	// DefaultSize is the size of a page in bytes
	DefaultSize = 4096

	AllocatorHeap   = "heap"
	AllocatorMmap   = "mmap"
	AllocatorMmapGo = "mmap-go"
)

var (
	ErrInvalidSize       = errors.New("invalid page size")
	ErrAllocationFailed  = errors.New("memory allocation failed")
	ErrUnknownAllocator  = errors.New("unknown allocator")
	errPageAlreadyFreed  = errors.New("page already released")
	availableAllocators  = []string{AllocatorHeap, AllocatorMmap, AllocatorMmapGo}
)

// Page is a fixed-size buffer of uninterpreted bytes. It must be released
// by its owner once the comparison is done.
type Page struct {
	Data []byte

	release func() error
}

func (p *Page) Release() error {
	if p.release == nil {
		return errPageAlreadyFreed
	}

	release := p.release
	p.release = nil
	p.Data = nil

	return release()
}

type Allocator interface {
	Name() string
	Allocate(size int) (*Page, error)
}

func ParseAllocator(name string) (Allocator, error) {
	switch name {
	case AllocatorHeap:
		return HeapAllocator{}, nil
	case AllocatorMmap:
		return MmapAllocator{}, nil
	case AllocatorMmapGo:
		return MmapGoAllocator{}, nil
	default:
		return nil, fmt.Errorf("%w: %q, expected one of %v", ErrUnknownAllocator, name, availableAllocators)
	}
}

func nopRelease() error {
	return nil
}

// HeapAllocator places pages on the Go heap; they are released by the GC.
type HeapAllocator struct{}

func (HeapAllocator) Name() string {
	return AllocatorHeap
}

func (HeapAllocator) Allocate(size int) (p *Page, err error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	// make panics for sizes the runtime can never satisfy
	defer func() {
		if r := recover(); r != nil {
			p = nil
			err = fmt.Errorf("%w: %v", ErrAllocationFailed, r)
		}
	}()

	return &Page{
		Data:    make([]byte, size),
		release: nopRelease,
	}, nil
}

// MmapAllocator maps every page as private anonymous memory.
type MmapAllocator struct{}

func (MmapAllocator) Name() string {
	return AllocatorMmap
}

func (MmapAllocator) Allocate(size int) (*Page, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	// Zero-length mappings are rejected by the kernel
	if size == 0 {
		return &Page{
			Data:    []byte{},
			release: nopRelease,
		}, nil
	}

	b, err := unix.Mmap(
		-1,
		0,
		size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_POPULATE,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailed, err)
	}

	return &Page{
		Data: b,
		release: func() error {
			return unix.Munmap(b)
		},
	}, nil
}

// MmapGoAllocator maps every page through mmap-go's anonymous regions.
type MmapGoAllocator struct{}

func (MmapGoAllocator) Name() string {
	return AllocatorMmapGo
}

func (MmapGoAllocator) Allocate(size int) (*Page, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	if size == 0 {
		return &Page{
			Data:    []byte{},
			release: nopRelease,
		}, nil
	}

	m, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocationFailed, err)
	}

	return &Page{
		Data: m,
		release: func() error {
			return m.Unmap()
		},
	}, nil
}
