package dma

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"sync"

	"github.com/holmberd/go-slicer"
	"golang.org/x/sys/unix"
)

const chunksPerAlloc = 1

const (
	KiB = 1024
	MiB = KiB * KiB

	ChunkSize64K  = 64 * KiB
	ChunkSize512K = 512 * KiB
	ChunkSize2M   = 2 * MiB
)

// ErrTooLarge is returned when no chunk size fits a requested length.
var ErrTooLarge = errors.New("requested length exceeds the largest chunk size")

// chunkSizes represents supported chunk sizes ordered by smallest to largest.
var chunkSizes = [3]int{
	ChunkSize64K,
	ChunkSize512K,
	ChunkSize2M,
}

func init() {
	// Runtime assertion.
	if !sort.IntsAreSorted(chunkSizes[:]) {
		panic(errors.New("chunk sizes must be sorted in ascending order"))
	}
}

// ChunkPool is a thread-safe collection of pools for off-heap memory chunks of
// a pre-defined set of fixed sizes.
//
// Chunks are mapped with mmap outside the Go heap, so their addresses never
// change and the GC never frees them; they are safe to hand to a transfer.
type ChunkPool struct {
	mu       sync.Mutex
	logger   *slog.Logger
	metrics  *Metrics
	free64K  []*[ChunkSize64K]byte
	free512K []*[ChunkSize512K]byte
	free2M   []*[ChunkSize2M]byte

	// freeThresholds represents the number of free chunks for each size the pool
	// can hold before starting to release memory.
	freeThresholds [len(chunkSizes)]int
}

// NewChunkPool creates a new, empty collection of chunk pools.
// A nil logger uses [slog.Default]; nil metrics are not registered anywhere.
func NewChunkPool(config ChunkPoolConfig, logger *slog.Logger, metrics *Metrics) *ChunkPool {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &ChunkPool{
		logger:         logger,
		metrics:        metrics,
		freeThresholds: config.FreeThresholds,
	}
}

// Sizes returns a slice of supported chunk sizes.
func (p *ChunkPool) Sizes() []int {
	return chunkSizes[:]
}

func (p *ChunkPool) IsSupported(chunkSize int) bool {
	return slices.Contains(p.Sizes(), chunkSize)
}

// Get retrieves a full-length chunk from a pool of the specified size.
// It will panic if an unsupported size is requested.
func (p *ChunkPool) Get(chunkSize int) Chunk {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch chunkSize {
	case ChunkSize64K:
		return takeChunk(p, &p.free64K, chunkSize)
	case ChunkSize512K:
		return takeChunk(p, &p.free512K, chunkSize)
	case ChunkSize2M:
		return takeChunk(p, &p.free2M, chunkSize)
	default:
		panic(fmt.Sprintf("unsupported chunk size requested: %d", chunkSize))
	}
}

// Acquire returns a chunk of logical length n from the smallest chunk size that fits.
// The error is ErrTooLarge if n exceeds the largest chunk size.
func (p *ChunkPool) Acquire(n int) (Chunk, error) {
	if n < 0 {
		return Chunk{}, fmt.Errorf("invalid chunk length %d: cannot be negative", n)
	}
	for _, size := range chunkSizes {
		if n <= size {
			return p.Get(size).Truncate(n), nil
		}
	}
	return Chunk{}, fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, n, chunkSizes[len(chunkSizes)-1])
}

// Put returns a chunk to the pool.
// It does nothing if the chunk size is not a supported size.
func (p *ChunkPool) Put(c Chunk) {
	if c.buf == nil {
		return
	}

	size := cap(c.buf)
	b := c.buf[:size] // Ensure the chunk is reset to its full capacity before returning.

	switch size {
	case ChunkSize64K:
		returnChunk(p, &p.free64K, (*[ChunkSize64K]byte)(b), size, p.freeThresholds[0])
	case ChunkSize512K:
		returnChunk(p, &p.free512K, (*[ChunkSize512K]byte)(b), size, p.freeThresholds[1])
	case ChunkSize2M:
		returnChunk(p, &p.free2M, (*[ChunkSize2M]byte)(b), size, p.freeThresholds[2])
	}
}

// Allocate ensures that at least numChunks are available in the pool for the
// specified size. This is useful for pre-warming a pool to a specific capacity.
// It will panic if an unsupported size is requested.
func (p *ChunkPool) Allocate(chunkSize int, numChunks int) {
	if numChunks <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	var n int
	switch chunkSize {
	case ChunkSize64K:
		n = numChunks - len(p.free64K)
	case ChunkSize512K:
		n = numChunks - len(p.free512K)
	case ChunkSize2M:
		n = numChunks - len(p.free2M)
	default:
		panic(fmt.Sprintf("unsupported chunk size for pre-allocation: %d", chunkSize))
	}
	if n > 0 {
		p.alloc(chunkSize, n)
	}
}

// unmap releases the memory of a chunk back to the operating system.
func (p *ChunkPool) unmap(c []byte) {
	if err := unix.Munmap(c); err != nil {
		p.logger.Error("failed to unmap chunk", "size", len(c), "error", err)
		return
	}
	p.metrics.mappedBytes.Sub(float64(len(c)))
}

// alloc allocates the specified number of free chunks and size.
// It assumes the caller holds the mutex.
func (p *ChunkPool) alloc(chunkSize int, numChunks int) {
	// Chunks are mapped one at a time so each can be unmapped on its own.
	for range numChunks {
		data, err := unix.Mmap(-1, 0, chunkSize,
			unix.PROT_READ|unix.PROT_WRITE,
			unix.MAP_ANON|unix.MAP_PRIVATE,
		)
		if err != nil {
			panic(fmt.Errorf("cannot allocate %d bytes via mmap: %w", chunkSize, err))
		}
		p.metrics.mappedBytes.Add(float64(chunkSize))

		switch chunkSize {
		case ChunkSize64K:
			p.free64K = append(p.free64K, (*[ChunkSize64K]byte)(data))
		case ChunkSize512K:
			p.free512K = append(p.free512K, (*[ChunkSize512K]byte)(data))
		case ChunkSize2M:
			p.free2M = append(p.free2M, (*[ChunkSize2M]byte)(data))
		}
	}
	p.setFree(chunkSize, p.numFreeNoLock(chunkSize))
}

func (p *ChunkPool) setFree(chunkSize int, n int) {
	p.metrics.freeChunks.WithLabelValues(strconv.Itoa(chunkSize)).Set(float64(n))
}

// numFree returns the number of available chunks for a given chunk size.
// It is primarily intended as helper method in tests.
func (p *ChunkPool) numFree(size int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.numFreeNoLock(size)
}

func (p *ChunkPool) numFreeNoLock(size int) int {
	switch size {
	case ChunkSize64K:
		return len(p.free64K)
	case ChunkSize512K:
		return len(p.free512K)
	case ChunkSize2M:
		return len(p.free2M)
	default:
		return 0
	}
}

// takeChunk pops the most recently freed chunk off a free list, mapping more
// chunks first if the list is empty. It assumes the caller holds the mutex.
func takeChunk[A any](p *ChunkPool, free *[]*A, chunkSize int) Chunk {
	if len(*free) == 0 {
		p.alloc(chunkSize, chunksPerAlloc)
	}
	n := len(*free) - 1
	ptr := (*free)[n]
	*free = (*free)[:n]
	p.setFree(chunkSize, n)
	return Chunk{buf: slicer.ArrayOf[byte](ptr).AsMutSlice()}
}

// returnChunk pushes a chunk onto a free list and unmaps whatever the
// threshold releases.
func returnChunk[A any](p *ChunkPool, free *[]*A, ptr *A, chunkSize, threshold int) {
	var toUnmap []*A

	p.mu.Lock()
	*free, toUnmap = releaseChunks(append(*free, ptr), threshold)
	p.setFree(chunkSize, len(*free))
	p.mu.Unlock()

	// Perform unmap outside of the lock to avoid blocking other operations.
	for _, c := range toUnmap {
		p.unmap(slicer.ArrayOf[byte](c).AsMutSlice())
	}
}

// releaseChunks is a generic helper that trims the free list if it exceeds the given threshold.
// It returns the updated list and a list of any chunks that were removed and should be unmapped.
func releaseChunks[P any](freeList []P, threshold int) (newList []P, toUnmap []P) {
	if threshold > 0 && len(freeList) > threshold {
		// Release half of the free chunks to prevent thrashing around the threshold.
		freeCount := len(freeList) / 2
		toUnmap = freeList[:freeCount:freeCount]
		newList = freeList[freeCount:]
		return newList, toUnmap
	}
	return freeList, nil
}
