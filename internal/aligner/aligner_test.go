package aligner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKnownBackends(t *testing.T) {
	assert.Equal(t, []string{"null", "nw"}, Names())

	a, err := New("nw", "dna")
	require.NoError(t, err)
	assert.Equal(t, "nw/dna", a.Name())

	a, err = New("nw", "")
	require.NoError(t, err)
	assert.Equal(t, "nw/ascii", a.Name())

	a, err = New("null", "")
	require.NoError(t, err)
	assert.Equal(t, "null", a.Name())
}

func TestNewUnknown(t *testing.T) {
	_, err := New("edlib", "dna")
	assert.ErrorIs(t, err, ErrUnknownName)

	_, err = New("nw", "klingon")
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ModeGlobal, cfg.Mode)
	assert.Equal(t, TaskPath, cfg.Task)
	assert.Equal(t, -1, cfg.MaxDistance)
	assert.Nil(t, cfg.Equalities)
}

func TestNWConfigIsUnitCost(t *testing.T) {
	a, err := NewNW("dna")
	require.NoError(t, err)
	cfg := a.NewConfig()
	require.Len(t, cfg.scores, a.alpha.Len())
	for i, row := range cfg.scores {
		require.Len(t, row, a.alpha.Len())
		for j, v := range row {
			if i == j {
				assert.Zero(t, v)
			} else {
				assert.Equal(t, -1, v)
			}
		}
	}
}

func TestNWAlign(t *testing.T) {
	a, err := NewNW("dna")
	require.NoError(t, err)
	cfg := a.NewConfig()

	res, err := a.Align([]byte("ACGTACGT"), []byte("ACGAACGT"), cfg)
	require.NoError(t, err)
	require.NotNil(t, res)
	pr := res.(*pathResult)
	assert.NotEmpty(t, pr.path)
	res.Release()
	assert.Nil(t, pr.path)
}

func TestNWAlignWithoutConfig(t *testing.T) {
	a, err := NewNW("dna")
	require.NoError(t, err)
	res, err := a.Align([]byte("AC"), []byte("AC"), DefaultConfig())
	assert.ErrorIs(t, err, ErrNoConfig)
	require.NotNil(t, res)
	res.Release()
}

func TestNWRejectsEqualities(t *testing.T) {
	a, err := NewNW("dna")
	require.NoError(t, err)
	cfg := a.NewConfig()
	cfg.Equalities = []Equality{{'A', 'N'}}
	_, err = a.Align([]byte("AC"), []byte("AN"), cfg)
	assert.ErrorIs(t, err, ErrEqualities)
}

func TestNWRejectsUnsupportedConfig(t *testing.T) {
	a, err := NewNW("")
	require.NoError(t, err)
	for _, edit := range []func(*Config){
		func(c *Config) { c.Mode = ModeGlobal + 1 },
		func(c *Config) { c.Task = TaskPath + 1 },
		func(c *Config) { c.MaxDistance = 10 },
	} {
		cfg := a.NewConfig()
		edit(&cfg)
		res, err := a.Align([]byte("AC"), []byte("AC"), cfg)
		assert.ErrorIs(t, err, ErrUnsupported)
		require.NotNil(t, res)
		res.Release()

		_, err = Null{}.Align(nil, nil, cfg)
		assert.ErrorIs(t, err, ErrUnsupported)
	}
}

func TestNWAlignsAnyByte(t *testing.T) {
	high := []byte("ACGT\x00\xff\x80ACGT")
	long := append([]byte(strings.Repeat("ACGT", 250)), 'N')
	pairs := [][2][]byte{
		{[]byte("ACGTNACGT"), []byte("ACGTACGT")},
		{[]byte("ACGT"), []byte("ACGU")},
		{[]byte("acgtRYKM"), []byte("ACGTnnnn")},
		{high, []byte("ACGTACGT")},
		{long, long[:900]},
	}
	for _, name := range []string{"", "dna", "redundant"} {
		a, err := NewNW(name)
		require.NoError(t, err)
		cfg := a.NewConfig()
		for _, p := range pairs {
			res, err := a.Align(p[0], p[1], cfg)
			require.NoError(t, err, "alphabet=%q query=%q", name, p[0])
			assert.NotEmpty(t, res.(*pathResult).path)
			res.Release()
		}
	}
}

func TestNWFoldLeavesInputAlone(t *testing.T) {
	a, err := NewNW("dna")
	require.NoError(t, err)
	q := []byte("ACNNGT")
	_, err = a.Align(q, []byte("ACGT"), a.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, "ACNNGT", string(q))
}

func TestNWAlignNeverPanics(t *testing.T) {
	a, err := NewNW("dna")
	require.NoError(t, err)
	cfg := a.NewConfig()
	for _, c := range [][2]string{{"", ""}, {"", "ACGT"}, {"XYZ", "ACGT"}} {
		assert.NotPanics(t, func() {
			res, _ := a.Align([]byte(c[0]), []byte(c[1]), cfg)
			require.NotNil(t, res)
			res.Release()
		})
	}
}

func TestNull(t *testing.T) {
	var n Null
	res, err := n.Align(nil, nil, n.NewConfig())
	require.NoError(t, err)
	res.Release()
}
