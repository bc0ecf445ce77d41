package batch

import (
	"context"
	"log"
	"sync"
	"time"

	"shortlink-allocator/internal/shortener"
)

// Allocator is the single-target operation the pool fans out.
type Allocator interface {
	Allocate(ctx context.Context, target string) (shortener.ShortCode, error)
}

// Job is one target waiting for a code.
type Job struct {
	Index  int
	Target string
}

// Result is the outcome for the target at Index of the input.
type Result struct {
	Index  int
	Target string
	Code   shortener.ShortCode
	Err    error
}

// Pool runs independent allocations concurrently, bounded by its worker count.
type Pool struct {
	allocator   Allocator
	workerCount int
}

// NewPool returns a Pool. workerCount below 1 is treated as 1.
func NewPool(allocator Allocator, workerCount int) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Pool{allocator: allocator, workerCount: workerCount}
}

// WorkerCount returns the concurrency limit.
func (p *Pool) WorkerCount() int { return p.workerCount }

// AllocateAll allocates one code per target and returns the results in input
// order. A failure for one target never affects the others.
func (p *Pool) AllocateAll(ctx context.Context, targets []string) []Result {
	results := make([]Result, len(targets))
	if len(targets) == 0 {
		return results
	}

	jobs := make(chan Job, len(targets))
	for i, target := range targets {
		jobs <- Job{Index: i, Target: target}
	}
	close(jobs)

	workers := p.workerCount
	if workers > len(targets) {
		workers = len(targets)
	}

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.worker(ctx, id, jobs, results)
		}(i)
	}
	wg.Wait()

	log.Printf("Batch: allocated %d targets with %d workers in %v", len(targets), workers, time.Since(start))
	return results
}

// worker drains jobs. Each result slot is written by exactly one worker.
func (p *Pool) worker(ctx context.Context, id int, jobs <-chan Job, results []Result) {
	for job := range jobs {
		code, err := p.allocator.Allocate(ctx, job.Target)
		if err != nil {
			log.Printf("Worker %d: allocation failed for %s: %v", id, job.Target, err)
		}
		results[job.Index] = Result{Index: job.Index, Target: job.Target, Code: code, Err: err}
	}
}
