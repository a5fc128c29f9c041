// Package affinity binds OS threads to CPUs. Pinning is best effort: callers
// log the error and keep going.
package affinity

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupported is returned on platforms without thread affinity.
var ErrUnsupported = errors.New("affinity: not supported on " + runtime.GOOS)

// Pinner binds the calling goroutine's thread to a CPU.
type Pinner interface {
	Pin(cpu int) error
}

// System pins through the operating system.
type System struct{}

// Pin locks the calling goroutine to its current OS thread and restricts that
// thread to cpu. The goroutine stays locked even if pinning fails, so the
// thread identity seen by the caller does not change afterwards.
func (System) Pin(cpu int) error {
	runtime.LockOSThread()
	if cpu < 0 {
		return fmt.Errorf("affinity: invalid cpu %d", cpu)
	}
	return pinCurrentThread(cpu)
}

// Allowed returns the CPUs the calling thread may currently run on.
func Allowed() ([]int, error) { return allowedCPUs() }

// None never pins.
type None struct{}

func (None) Pin(int) error { return nil }
