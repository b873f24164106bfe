package filter

import (
	"context"
	"runtime"
	"sync"
)

// FilterParallel produces the same result as FilterListOfStrings, indexing and
// reducing documents on a bounded pool of goroutines.
func FilterParallel(ctx context.Context, strings []string, threshold, workers int) ([]string, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	window := windowSize(threshold)
	docs := make([]*document, len(strings))
	err := fanOut(ctx, len(strings), workers, func(i int) {
		docs[i] = indexDocument(strings[i], window)
	})
	if err != nil {
		return nil, err
	}

	shared := sharedHashes(docs)
	out := make([]string, len(docs))
	err = fanOut(ctx, len(docs), workers, func(i int) {
		out[i] = docs[i].removeWhere(shared)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// fanOut runs work for every index in [0, n) on at most workers goroutines.
// It stops handing out indexes once ctx is done.
func fanOut(ctx context.Context, n, workers int, work func(int)) error {
	jobs := make(chan int)
	var wg sync.WaitGroup

	for range min(workers, n) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				work(i)
			}
		}()
	}

	var err error
feed:
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return err
}

// Parallel is SharedSubstrings spread over several goroutines
type Parallel struct {
	Threshold int
	Workers   int
}

func (p *Parallel) Name() string {
	return TypeParallel
}

func (p *Parallel) Apply(ctx context.Context, input []string) ([]string, error) {
	return FilterParallel(ctx, input, p.Threshold, p.Workers)
}
