//go:build linux

package affinity

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// setBits is the number of CPUs a unix.CPUSet can describe.
const setBits = int(unsafe.Sizeof(unix.CPUSet{})) * 8

func pinCurrentThread(cpu int) error {
	if cpu >= setBits {
		return fmt.Errorf("affinity: cpu %d exceeds cpu set size %d", cpu, setBits)
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	// pid 0 is the calling thread.
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: pin to cpu %d: %w", cpu, err)
	}
	return nil
}

func allowedCPUs() ([]int, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("affinity: %w", err)
	}
	out := make([]int, 0, set.Count())
	for cpu := 0; cpu < setBits && len(out) < cap(out); cpu++ {
		if set.IsSet(cpu) {
			out = append(out, cpu)
		}
	}
	return out, nil
}
