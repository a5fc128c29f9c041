// internal/bench/worker.go
package bench

import (
	"fmt"
	"time"

	"nwbench/internal/aligner"
)

// PairSource is the read-only view of a sequence store a worker needs.
type PairSource interface {
	Pairs() int
	Pair(k int) (query, target []byte)
}

// WorkerStats describes what one worker did.
type WorkerStats struct {
	TID       int
	CPU       int
	Lo, Hi    int
	Processed int
	Failed    int
	Pinned    bool
	PinError  string
	Elapsed   time.Duration
}

// Work aligns pairs [lo, hi) of src in ascending order. The config is built
// once. Results are released right away and their errors are only counted.
func Work(src PairSource, a aligner.Aligner, lo, hi int) (processed, failed int) {
	cfg := a.NewConfig()
	for k := lo; k < hi; k++ {
		q, t := src.Pair(k)
		if err := alignOne(a, q, t, cfg); err != nil {
			failed++
		}
		processed++
	}
	return processed, failed
}

func alignOne(a aligner.Aligner, q, t []byte, cfg aligner.Config) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bench: aligner panic: %v", r)
		}
	}()
	res, err := a.Align(q, t, cfg)
	if res != nil {
		res.Release()
	}
	return err
}
