package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/FelixBlom97/EloStealo/app/codec"
)

// ReencodeLegacy rewrites every legacy-encoded game in the compact format,
// batchSize games at a time spread over workers goroutines. Games that fail
// to decode or update are logged and left in place. It returns how many games
// were converted.
func ReencodeLegacy(ctx context.Context, st GameStore, batchSize, workers int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	start := time.Now()
	converted := 0
	skipped := 0 // failed rows stay legacy, so page past them

	for {
		ids, err := st.ListGameIDs(ctx, codec.FormatLegacy, batchSize, skipped)
		if err != nil {
			return converted, err
		}
		if len(ids) == 0 {
			break
		}
		ok := reencodeBatch(ctx, st, ids, workers)
		converted += ok
		skipped += len(ids) - ok
	}

	log.Printf("Re-encode complete: converted=%d skipped=%d took=%s", converted, skipped, time.Since(start))
	return converted, nil
}

func reencodeBatch(ctx context.Context, st GameStore, ids []string, workers int) int {
	if workers <= 0 {
		workers = 1
	}
	log.Printf("Re-encoding %d games with %d workers", len(ids), workers)

	jobs := make(chan string, len(ids))
	results := make(chan string, len(ids))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for id := range jobs {
				sg, err := st.GetGame(ctx, id)
				if err != nil {
					log.Printf("worker %d: failed to load game=%s: %v", worker, id, err)
					continue
				}
				if err := st.UpdateGame(ctx, sg); err != nil {
					log.Printf("worker %d: failed to update game=%s: %v", worker, id, err)
					continue
				}
				results <- id
			}
		}(i)
	}

	go func() {
		defer close(jobs)
		for _, id := range ids {
			jobs <- id
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	n := 0
	for range results {
		n++
	}
	return n
}
