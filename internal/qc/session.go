package qc

import (
	"time"

	"fip_qc/internal/dataset"
)

// ChannelData is a loaded channel stream, or the reason it could not be loaded.
type ChannelData struct {
	Table *dataset.Table
	Err   error
}

// DatasetSuite runs whole-session checks across the color channels.
type DatasetSuite struct {
	green, iso, red ChannelData
	minDuration     time.Duration
}

var _ Suite = (*DatasetSuite)(nil)

func NewDatasetSuite(green, iso, red ChannelData, minDuration time.Duration) *DatasetSuite {
	return &DatasetSuite{green: green, iso: iso, red: red, minDuration: minDuration}
}

func (s *DatasetSuite) Name() string { return "dataset" }

func (s *DatasetSuite) Checks() []Check {
	return []Check{
		Single("equal_length", s.EqualLength),
		Single("min_duration", s.MinDuration),
	}
}

// EqualLength fails unless green, iso and red have the same number of rows.
func (s *DatasetSuite) EqualLength() Result {
	channels := []struct {
		name string
		data ChannelData
	}{
		{dataset.StreamGreen, s.green},
		{dataset.StreamIso, s.iso},
		{dataset.StreamRed, s.red},
	}
	counts := make([]int, len(channels))
	for i, c := range channels {
		if c.data.Table == nil {
			return missingStream(c.name, c.data.Err)
		}
		counts[i] = c.data.Table.Len()
	}
	if counts[0] != counts[1] || counts[1] != counts[2] {
		return Fail("Channel lengths differ: green=%d iso=%d red=%d.", counts[0], counts[1], counts[2])
	}
	return Pass("All channels have %d rows.", counts[0]).WithValue(float64(counts[0]))
}

// MinDuration fails when the green channel spans less than the minimum duration.
func (s *DatasetSuite) MinDuration() Result {
	if s.green.Table == nil {
		return missingStream(dataset.StreamGreen, s.green.Err)
	}
	idx := finite(s.green.Table.Index())
	if len(idx) == 0 {
		return Fail("Green channel has no samples.").WithValue(0)
	}
	elapsed := idx[len(idx)-1] - idx[0]
	if elapsed < s.minDuration.Seconds() {
		return Fail("Recording lasted %.1f s, less than the minimum %.1f s.", elapsed, s.minDuration.Seconds()).
			WithValue(elapsed)
	}
	return Pass("Recording lasted %.1f s.", elapsed).WithValue(elapsed)
}
