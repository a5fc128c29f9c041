// internal/bench/dispatch.go
package bench

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"nwbench/internal/affinity"
	"nwbench/internal/aligner"
	"nwbench/internal/partition"
)

// Options configures a run.
type Options struct {
	Threads int
	Source  PairSource
	Aligner aligner.Aligner
	Pinner  affinity.Pinner    // nil = affinity.System{}
	Log     logrus.FieldLogger // nil = discard
	Banner  io.Writer          // per-worker startup lines; nil = none
}

// Summary is the outcome of a run. Workers is indexed by tid.
type Summary struct {
	Pairs   int
	Threads int
	Wall    time.Duration
	Workers []WorkerStats
}

// Processed sums the pairs handled by every worker.
func (s Summary) Processed() int {
	n := 0
	for _, w := range s.Workers {
		n += w.Processed
	}
	return n
}

// Failed sums the alignment calls that returned an error.
func (s Summary) Failed() int {
	n := 0
	for _, w := range s.Workers {
		n += w.Failed
	}
	return n
}

// Run executes the benchmark on the calling goroutine, which becomes worker 0.
func Run(o Options) (Summary, error) {
	if o.Threads < 1 {
		return Summary{}, fmt.Errorf("bench: threads must be >= 1, got %d", o.Threads)
	}
	if o.Source == nil || o.Aligner == nil {
		return Summary{}, errors.New("bench: source and aligner are required")
	}
	if o.Pinner == nil {
		o.Pinner = affinity.System{}
	}
	if o.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Log = l
	}
	banner := &lockedWriter{w: o.Banner}

	spans := partition.All(o.Threads, o.Source.Pairs())
	stats := make([]WorkerStats, o.Threads)

	stats[0] = WorkerStats{TID: 0, CPU: 0, Lo: spans[0].Lo, Hi: spans[0].Hi}
	pin(o, &stats[0])

	start := time.Now()

	done := make([]chan WorkerStats, o.Threads)
	for i := 1; i < o.Threads; i++ {
		done[i] = make(chan WorkerStats, 1)
		go func(sp partition.Span, out chan<- WorkerStats) {
			ws := WorkerStats{TID: sp.TID, CPU: sp.TID, Lo: sp.Lo, Hi: sp.Hi}
			pin(o, &ws)
			runSpan(o, banner, &ws)
			out <- ws
		}(spans[i], done[i])
	}

	runSpan(o, banner, &stats[0])

	for i := 1; i < o.Threads; i++ {
		stats[i] = <-done[i]
	}

	return Summary{
		Pairs:   o.Source.Pairs(),
		Threads: o.Threads,
		Wall:    time.Since(start),
		Workers: stats,
	}, nil
}

func pin(o Options, ws *WorkerStats) {
	if err := o.Pinner.Pin(ws.CPU); err != nil {
		ws.PinError = err.Error()
		o.Log.WithFields(logrus.Fields{"tid": ws.TID, "cpu": ws.CPU}).Warnf("could not pin thread: %v", err)
		return
	}
	ws.Pinned = true
}

func runSpan(o Options, banner io.Writer, ws *WorkerStats) {
	fmt.Fprintf(banner, "Starting thread %d to process %d alignments.\n", ws.TID, ws.Hi-ws.Lo)
	t0 := time.Now()
	ws.Processed, ws.Failed = Work(o.Source, o.Aligner, ws.Lo, ws.Hi)
	ws.Elapsed = time.Since(t0)
}

// lockedWriter serializes banner lines written from several workers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	if l.w == nil {
		return len(p), nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
