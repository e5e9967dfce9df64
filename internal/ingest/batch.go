package ingest

import (
	"context"
	"sync"
)

// BatchItem pairs an input path with its outcome. Exactly one of Result and
// Err is set.
type BatchItem struct {
	Path   string
	Result *Result
	Err    error
}

// IngestAll ingests paths with up to workers concurrent pipeline calls. Items
// come back in input order. Cancellation is checked before each file; files
// not started when ctx ends carry ctx.Err().
func (p *Pipeline) IngestAll(ctx context.Context, paths []string, workers int) []BatchItem {
	items := make([]BatchItem, len(paths))
	if len(paths) == 0 {
		return items
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan int)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				item := BatchItem{Path: paths[idx]}
				if err := ctx.Err(); err != nil {
					item.Err = err
				} else {
					item.Result, item.Err = p.IngestFile(ctx, paths[idx])
				}
				items[idx] = item

				if p.opts.Progress != nil {
					mu.Lock()
					done++
					p.opts.Progress(item, done, len(paths))
					mu.Unlock()
				}
			}
		}()
	}
	for idx := range paths {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()
	return items
}
