// internal/partition/partition.go
package partition

import "fmt"

// Span is a half-open range [Lo, Hi) of pair indices owned by one worker.
type Span struct {
	TID    int
	Lo, Hi int
}

// Len returns the number of pairs in the span.
func (s Span) Len() int { return s.Hi - s.Lo }

// Range maps worker tid of threads to its contiguous pair range over n pairs.
// Every worker gets n/threads pairs; the last one also takes the remainder.
func Range(tid, threads, n int) (lo, hi int) {
	if threads < 1 {
		panic(fmt.Sprintf("partition: threads must be >= 1, got %d", threads))
	}
	if tid < 0 || tid >= threads {
		panic(fmt.Sprintf("partition: tid %d out of range [0,%d)", tid, threads))
	}
	base := n / threads
	lo = tid * base
	hi = lo + base
	if tid == threads-1 {
		hi += n % threads
	}
	return lo, hi
}

// All returns the spans of every worker in tid order.
func All(threads, n int) []Span {
	out := make([]Span, threads)
	for tid := range out {
		lo, hi := Range(tid, threads, n)
		out[tid] = Span{TID: tid, Lo: lo, Hi: hi}
	}
	return out
}
