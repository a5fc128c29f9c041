// Package seqstore holds a batch of query/target sequence pairs in one
// contiguous fixed-stride buffer.
//
// Record 2k is the query and record 2k+1 the target of pair k. Slot i starts
// at byte offset i*stride. A Store is written once by Load and is read-only
// afterwards, so any number of goroutines may read it without locking.
package seqstore

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrAllocation is returned when the buffer cannot be sized or allocated.
	ErrAllocation = errors.New("sequence buffer allocation failed")
	// ErrOpen is returned when the input file cannot be opened.
	ErrOpen = errors.New("could not open sequence file")
)

type Store struct {
	stride int
	pairs  int
	buf    []byte
	lens   []int

	lines     int
	truncated int
	readDur   time.Duration
}

// BufferSize returns the number of bytes a store for pairs pairs of at most
// stride bytes needs, or an error if that does not fit in an int.
func BufferSize(stride, pairs int) (int, error) {
	if stride < 1 {
		return 0, fmt.Errorf("%w: stride must be >= 1, got %d", ErrAllocation, stride)
	}
	if pairs < 0 {
		return 0, fmt.Errorf("%w: pair count must be >= 0, got %d", ErrAllocation, pairs)
	}
	if pairs > 0 && stride > math.MaxInt/2/pairs {
		return 0, fmt.Errorf("%w: %d pairs x %d bytes overflows", ErrAllocation, pairs, stride)
	}
	return 2 * pairs * stride, nil
}

// New allocates a zeroed store for pairs pairs with slot width stride.
func New(stride, pairs int) (s *Store, err error) {
	size, err := BufferSize(stride, pairs)
	if err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("%w: %v", ErrAllocation, r)
		}
	}()
	return &Store{
		stride: stride,
		pairs:  pairs,
		buf:    make([]byte, size),
		lens:   make([]int, 2*pairs),
	}, nil
}

func (s *Store) Stride() int { return s.stride }
func (s *Store) Pairs() int  { return s.pairs }

// Records is the number of slots, 2*Pairs().
func (s *Store) Records() int { return len(s.lens) }

// Bytes is the size of the sequence buffer.
func (s *Store) Bytes() int { return len(s.buf) }

// Lines is the number of records populated by Load.
func (s *Store) Lines() int { return s.lines }

// Truncated counts lines whose content was longer than the stride.
func (s *Store) Truncated() int { return s.truncated }

// Short reports whether the input ended before every slot was filled.
func (s *Store) Short() bool { return s.lines < len(s.lens) }

// ReadDuration is the time Open spent reading the file.
func (s *Store) ReadDuration() time.Duration { return s.readDur }

// Len returns the valid byte count of slot i.
func (s *Store) Len(i int) int { return s.lens[i] }

// Slot returns the valid prefix of slot i. The result aliases the store and
// must not be modified.
func (s *Store) Slot(i int) []byte {
	off := i * s.stride
	return s.buf[off : off+s.lens[i] : off+s.stride]
}

// Raw returns the full stride-wide slot i, including its zero tail.
func (s *Store) Raw(i int) []byte {
	off := i * s.stride
	return s.buf[off : off+s.stride : off+s.stride]
}

// Pair returns the query and target of pair k.
func (s *Store) Pair(k int) (query, target []byte) {
	return s.Slot(2 * k), s.Slot(2*k + 1)
}

// Release drops the buffer and length table. The store is unusable afterwards.
func (s *Store) Release() {
	s.buf = nil
	s.lens = nil
}
