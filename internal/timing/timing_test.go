package timing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fip_qc/internal/dataset"
	"fip_qc/internal/models"
)

var candidates = []string{dataset.StreamGreenIsoMetadata, dataset.StreamRedMetadata}

func cpuTable(name string, stamps ...string) *dataset.Table {
	idx := make([]float64, len(stamps))
	for i := range idx {
		idx[i] = float64(i)
	}
	return dataset.NewTable(name, "ReferenceTime", idx).WithText("CpuTime", stamps)
}

func memOpener(m dataset.Memory) Opener {
	return func(string) dataset.Dataset { return m }
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 7, 18, 19, 3, 19, 0, time.UTC)
	for _, in := range []string{
		"2025-07-18T19:03:19Z",
		"2025-07-18T19:03:19.000Z",
		"2025-07-18T19:03:19+00:00",
		"2025-07-18T12:03:19-07:00",
		"2025-07-18T19:03:19+0000",
		"2025-07-18T21:03:19.000+0200",
		"2025-07-18 12:03:19-0700",
		"2025-07-18T19:03:19",
		"2025-07-18 19:03:19",
	} {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(want), "%s -> %s", in, got)
		assert.Equal(t, time.UTC, got.Location(), in)
	}

	got, err := ParseTimestamp("2025-07-18T19:03:19.1234567+00:00")
	require.NoError(t, err)
	assert.Equal(t, 123456700, got.Nanosecond())

	_, err = ParseTimestamp("yesterday")
	assert.ErrorIs(t, err, ErrMalformedTiming)
}

func TestFromTable_FirstAndLastRow(t *testing.T) {
	tbl := cpuTable("m", "2025-07-18T19:03:19.000Z", "2025-07-18T19:03:20.000Z", "2025-07-18T19:03:21.000Z")
	ts, err := FromTable(tbl, "CpuTime")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 18, 19, 3, 19, 0, time.UTC), ts.Start)
	assert.Equal(t, time.Date(2025, 7, 18, 19, 3, 21, 0, time.UTC), ts.End)
	assert.False(t, ts.End.Before(ts.Start))
}

func TestFromTable_Errors(t *testing.T) {
	_, err := FromTable(cpuTable("m"), "CpuTime")
	assert.ErrorIs(t, err, ErrEmptyData)

	_, err = FromTable(cpuTable("m", "2025-07-18T19:03:19Z"), "Missing")
	assert.ErrorIs(t, err, ErrMalformedTiming)

	_, err = FromTable(cpuTable("m", "2025-07-18T19:03:21Z", "2025-07-18T19:03:19Z"), "CpuTime")
	assert.ErrorIs(t, err, ErrMalformedTiming)
}

func TestExtract_FirstSuccessWins(t *testing.T) {
	m := dataset.Memory{
		dataset.StreamGreenIsoMetadata: cpuTable("g", "2025-07-18T19:03:19Z", "2025-07-18T19:03:21Z"),
		dataset.StreamRedMetadata:      cpuTable("r", "2025-07-18T19:00:00Z", "2025-07-18T20:00:00Z"),
	}
	ts, err := NewExtractor(candidates, "CpuTime", memOpener(m), nil).Extract(models.Epoch{ID: "fip_1"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 7, 18, 19, 3, 19, 0, time.UTC), ts.Start)
	assert.Equal(t, time.Date(2025, 7, 18, 19, 3, 21, 0, time.UTC), ts.End)
}

func TestExtract_FallsThroughEmptyAndMissing(t *testing.T) {
	m := dataset.Memory{
		dataset.StreamGreenIsoMetadata: cpuTable("g"),
		dataset.StreamRedMetadata:      cpuTable("r", "2025-07-18T19:03:25Z", "2025-07-18T19:03:30Z"),
	}
	ts, err := NewExtractor(candidates, "CpuTime", memOpener(m), nil).Extract(models.Epoch{ID: "fip_1"})
	require.NoError(t, err)
	assert.Equal(t, 25, ts.Start.Second())

	delete(m, dataset.StreamGreenIsoMetadata)
	_, err = NewExtractor(candidates, "CpuTime", memOpener(m), nil).Extract(models.Epoch{ID: "fip_1"})
	require.NoError(t, err)
}

func TestExtract_NoUsableCandidate(t *testing.T) {
	m := dataset.Memory{dataset.StreamGreenIsoMetadata: cpuTable("g")}
	_, err := NewExtractor(candidates, "CpuTime", memOpener(m), nil).Extract(models.Epoch{ID: "fip_9"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimingNotFound)
	assert.ErrorIs(t, err, ErrEmptyData)
	assert.True(t, errors.Is(err, dataset.ErrStreamNotFound))
	assert.Contains(t, err.Error(), "fip_9")
}
