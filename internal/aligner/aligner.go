// Package aligner is the boundary to the pairwise alignment routine under
// measurement. The harness only builds a Config, calls Align and releases the
// Result; it never looks inside a result.
package aligner

import (
	"errors"
	"fmt"
	"sort"
)

// Mode selects how sequence ends are treated.
type Mode int

const (
	// ModeGlobal aligns both sequences end to end (Needleman-Wunsch).
	ModeGlobal Mode = iota
)

// Task selects how much of the alignment is produced.
type Task int

const (
	// TaskPath produces the full alignment path (traceback).
	TaskPath Task = iota
)

// Equality declares two letters as matching each other.
type Equality [2]byte

var (
	ErrNoConfig    = errors.New("aligner: config was not built by this aligner")
	ErrEqualities  = errors.New("aligner: custom equality tables are not supported")
	ErrUnsupported = errors.New("aligner: only global mode, full path and no distance cutoff are supported")
	ErrUnknownName = errors.New("aligner: unknown backend")
)

// Config is built once per worker and reused for every pair. Backends reject
// any Mode, Task or MaxDistance other than the DefaultConfig values.
type Config struct {
	Mode        Mode
	Task        Task
	MaxDistance int // -1 = no cutoff
	Equalities  []Equality

	scores [][]int
}

// Result owns whatever the backend produced for one pair.
// Release must be called exactly once after every Align call.
type Result interface {
	Release()
}

// Aligner is the alignment routine being benchmarked. Implementations must be
// safe for concurrent Align calls with distinct inputs and per-caller Configs.
type Aligner interface {
	Name() string
	NewConfig() Config
	Align(query, target []byte, cfg Config) (Result, error)
}

// DefaultConfig is global mode, full path, no cutoff, no equality table.
func DefaultConfig() Config {
	return Config{Mode: ModeGlobal, Task: TaskPath, MaxDistance: -1}
}

func (c Config) check() error {
	if c.Mode != ModeGlobal || c.Task != TaskPath || c.MaxDistance != -1 {
		return fmt.Errorf("%w: mode=%d task=%d max_distance=%d", ErrUnsupported, c.Mode, c.Task, c.MaxDistance)
	}
	if len(c.Equalities) > 0 {
		return ErrEqualities
	}
	return nil
}

type factory func(alphabet string) (Aligner, error)

var backends = map[string]factory{
	"nw":   func(alpha string) (Aligner, error) { return NewNW(alpha) },
	"null": func(string) (Aligner, error) { return Null{}, nil },
}

// Names lists the registered backends, sorted.
func Names() []string {
	out := make([]string, 0, len(backends))
	for k := range backends {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// New returns the named backend.
func New(name, alphabet string) (Aligner, error) {
	f, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownName, name, Names())
	}
	return f(alphabet)
}

// Null does no work; it measures harness overhead.
type Null struct{}

func (Null) Name() string      { return "null" }
func (Null) NewConfig() Config { return DefaultConfig() }
func (Null) Align(_, _ []byte, cfg Config) (Result, error) {
	return nopResult{}, cfg.check()
}

type nopResult struct{}

func (nopResult) Release() {}
