// internal/sysinfo/sysinfo.go
package sysinfo

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// LogicalCPUs returns the number of logical CPUs, falling back to
// runtime.NumCPU when the system cannot be queried.
func LogicalCPUs() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.NumCPU()
	}
	return n
}

// AvailableMemory returns the bytes the kernel reports as available for new
// allocations.
func AvailableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("sysinfo: %w", err)
	}
	return vm.Available, nil
}

// Probe reports host facts used to sanity-check a run.
type Probe interface {
	LogicalCPUs() int
	AvailableMemory() (uint64, error)
}

// Host is the Probe backed by the running system.
type Host struct{}

func (Host) LogicalCPUs() int                 { return LogicalCPUs() }
func (Host) AvailableMemory() (uint64, error) { return AvailableMemory() }
