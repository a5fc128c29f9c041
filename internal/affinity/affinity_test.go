package affinity

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPinToAllowedCPU(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("thread affinity is linux-only")
	}
	cpus, err := Allowed()
	require.NoError(t, err)
	require.NotEmpty(t, cpus)
	target := cpus[len(cpus)-1]

	done := make(chan []int)
	errs := make(chan error, 1)
	go func() {
		// The locked thread is discarded when this goroutine returns.
		if err := (System{}).Pin(target); err != nil {
			errs <- err
			close(done)
			return
		}
		got, err := Allowed()
		if err != nil {
			errs <- err
		}
		done <- got
	}()
	got := <-done
	select {
	case err := <-errs:
		t.Fatalf("pin: %v", err)
	default:
	}
	assert.Equal(t, []int{target}, got)
}

func TestPinRejectsNegativeCPU(t *testing.T) {
	errc := make(chan error)
	go func() { errc <- (System{}).Pin(-1) }()
	assert.Error(t, <-errc)
}

func TestPinUnsupportedElsewhere(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Skip("affinity is supported here")
	}
	errc := make(chan error)
	go func() { errc <- (System{}).Pin(0) }()
	assert.ErrorIs(t, <-errc, ErrUnsupported)
}

func TestNone(t *testing.T) {
	assert.NoError(t, None{}.Pin(12345))
}
