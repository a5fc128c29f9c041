// Package bench runs the measurement: it splits the pairs of a store into one
// static range per worker, pins every worker to its own CPU and times the run.
//
// The calling goroutine is worker 0 and is pinned to CPU 0; workers 1..T-1
// run on their own locked OS threads pinned to CPUs 1..T-1. Workers share
// only read-only data, so the hot loop takes no locks.
package bench
