// internal/aligner/nw.go
package aligner

import (
	"fmt"

	"github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/feat"
	"github.com/biogo/biogo/seq/linear"
)

// DefaultAlphabet compares raw bytes, so any input aligns.
const DefaultAlphabet = "ascii"

// ascii holds every 7-bit byte, case sensitive, gap first as align.NW requires.
// DEL stands in for bytes above 0x7f.
var ascii = alphabet.Must(alphabet.NewAlphabet(asciiLetters(), feat.Undefined, '-', 0x7f, alphabet.CaseSensitive))

var alphabets = map[string]alphabet.Alphabet{
	"ascii":     ascii,
	"dna":       alphabet.DNAgapped,
	"redundant": alphabet.DNAredundant,
}

func asciiLetters() string {
	b := []byte{'-'}
	for c := 0; c <= 0x7f; c++ {
		if c != '-' {
			b = append(b, byte(c))
		}
	}
	return string(b)
}

// NW is a global alignment with traceback backed by biogo's Needleman-Wunsch
// aligner. Scores are unit edit costs: 0 for a match, -1 for a mismatch or gap.
type NW struct {
	alpha alphabet.Alphabet
	fold  alphabet.Letter
	name  string
}

// NewNW returns an NW aligner over the named alphabet ("ascii", "dna" or
// "redundant"). Bytes the alphabet does not know are folded to its ambiguous
// letter, or to the gap letter when the ambiguous letter is not in the alphabet.
func NewNW(name string) (*NW, error) {
	if name == "" {
		name = DefaultAlphabet
	}
	a, ok := alphabets[name]
	if !ok {
		return nil, fmt.Errorf("aligner: unknown alphabet %q", name)
	}
	fold := a.Ambiguous()
	if !a.IsValid(fold) {
		fold = a.Gap()
	}
	return &NW{alpha: a, fold: fold, name: name}, nil
}

func (a *NW) Name() string { return "nw/" + a.name }

// NewConfig builds the per-worker scoring matrix.
func (a *NW) NewConfig() Config {
	cfg := DefaultConfig()
	n := a.alpha.Len()
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
		for j := range m[i] {
			if i != j {
				m[i][j] = -1
			}
		}
	}
	cfg.scores = m
	return cfg
}

// Align runs one global alignment. A panic inside biogo is turned into an
// error.
func (a *NW) Align(query, target []byte, cfg Config) (out Result, err error) {
	res := &pathResult{}
	out = res
	if cfg.scores == nil {
		return res, ErrNoConfig
	}
	if err := cfg.check(); err != nil {
		return res, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("aligner: nw: %v", r)
		}
	}()

	q := a.seq("query", query)
	t := a.seq("target", target)
	res.path, err = align.NW(cfg.scores).Align(q, t)
	return res, err
}

// seq copies b into a biogo sequence and folds unknown letters in the copy.
func (a *NW) seq(id string, b []byte) *linear.Seq {
	s := linear.NewSeq(id, alphabet.BytesToLetters(b), a.alpha)
	if ok, _ := a.alpha.AllValid(s.Seq); ok {
		return s
	}
	for i, l := range s.Seq {
		if !a.alpha.IsValid(l) {
			s.Seq[i] = a.fold
		}
	}
	return s
}

type pathResult struct {
	path []feat.Pair
}

func (r *pathResult) Release() { r.path = nil }
