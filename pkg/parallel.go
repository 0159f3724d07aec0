package pkg

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/hansbonini/iso2raw/pkg/cdrom"
	"github.com/klauspost/cpuid/v2"
)

const (
	// DefaultMaxWorkers caps the default worker count; sector encoding is
	// memory-bandwidth bound and stops scaling well past this.
	DefaultMaxWorkers = 8

	// DefaultChunkSize is the number of sectors handed to each worker per
	// batch.
	DefaultChunkSize = 64
)

// ParallelEncoder fans sector encoding out to a bounded pool of worker
// goroutines. Results always come back in job order regardless of
// completion order, so the worker count never affects output bytes.
type ParallelEncoder struct {
	workers   int
	chunkSize int
}

// NewParallelEncoder creates an encoder pool. A non-positive worker count
// selects the default: the physical core count (capped at
// DefaultMaxWorkers).
func NewParallelEncoder(workers int) *ParallelEncoder {
	if workers <= 0 {
		workers = cpuid.CPU.PhysicalCores
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		if workers > DefaultMaxWorkers {
			workers = DefaultMaxWorkers
		}
	}

	return &ParallelEncoder{
		workers:   workers,
		chunkSize: DefaultChunkSize,
	}
}

// Workers returns the number of worker goroutines used per batch.
func (e *ParallelEncoder) Workers() int {
	return e.workers
}

// ChunkSize returns the per-worker batch granularity.
func (e *ParallelEncoder) ChunkSize() int {
	return e.chunkSize
}

// BatchSize returns the number of sectors processed per batch.
func (e *ParallelEncoder) BatchSize() int {
	return e.workers * e.chunkSize
}

// EncodeBatch encodes all jobs concurrently and returns the raw sectors in
// job order. A single failed sector fails the whole batch; no partial
// results are returned.
func (e *ParallelEncoder) EncodeBatch(jobs []SectorJob) ([][]byte, error) {
	results := make([][]byte, len(jobs))
	errs := make([]error, len(jobs))

	indexes := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i], errs[i] = cdrom.EncodeSector(jobs[i].LBA, jobs[i].Data)
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to encode sector %d: %w", jobs[i].LBA, err)
		}
	}

	return results, nil
}
