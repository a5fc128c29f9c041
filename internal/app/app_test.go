package app

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nwbench/internal/bench"
)

func TestWarnFailures(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	warnFailures(logger, bench.Summary{Pairs: 4, Workers: []bench.WorkerStats{{Processed: 4}}})
	assert.Empty(t, hook.AllEntries())

	warnFailures(logger, bench.Summary{Pairs: 4, Workers: []bench.WorkerStats{
		{Processed: 2, Failed: 1},
		{Processed: 2, Failed: 2},
	}})
	e := hook.LastEntry()
	require.NotNil(t, e)
	assert.Equal(t, logrus.WarnLevel, e.Level)
	assert.Equal(t, 3, e.Data["failures"])
	assert.Equal(t, 4, e.Data["pairs"])
}
