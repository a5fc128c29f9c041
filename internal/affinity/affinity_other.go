//go:build !linux

package affinity

func pinCurrentThread(int) error { return ErrUnsupported }

func allowedCPUs() ([]int, error) { return nil, ErrUnsupported }
