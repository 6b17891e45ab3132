package qc

import (
	"fmt"
	"regexp"
	"time"

	"fip_qc/internal/config"
	"fip_qc/internal/dataset"
)

// Channels lists the camera color channels in report order.
var Channels = []string{dataset.StreamGreen, dataset.StreamIso, dataset.StreamRed}

// BuildSuites loads the channel streams of an epoch and binds the metadata and
// signal suites of every channel plus the dataset suite. Unreadable streams do
// not abort the build; the affected checks skip instead.
func BuildSuites(ds dataset.Dataset, cfg config.QCConfig) ([]Suite, error) {
	fibers, err := regexp.Compile(cfg.FiberColumnPattern)
	if err != nil {
		return nil, fmt.Errorf("fiber column pattern: %w", err)
	}

	loaded := make(map[string]ChannelData, len(Channels))
	for _, ch := range Channels {
		tbl, err := ds.Stream(ch)
		loaded[ch] = ChannelData{Table: tbl, Err: err}
	}

	suites := make([]Suite, 0, 2*len(Channels)+1)
	for _, ch := range Channels {
		cc := cfg.Channel(ch)
		suites = append(suites, NewMetadataSuite(ch, loaded[ch].Table, loaded[ch].Err, MetadataOptions{
			FrameStride:       cc.FrameStride,
			ExpectedFPS:       cc.ExpectedFPS,
			ClockJitterS:      cfg.ClockJitterS,
			FramePeriodStdS:   cfg.FramePeriodStdS,
			FramePeriodRelTol: cfg.FramePeriodRelTol,
		}))
	}
	for _, ch := range Channels {
		suites = append(suites, NewSignalSuite(ch, loaded[ch].Table, loaded[ch].Err, SignalOptions{
			SensorFloorLimit:  cfg.SensorFloorLimit,
			SuddenChangeLimit: cfg.SuddenChangeLimit,
			FiberColumns:      fibers,
		}))
	}
	suites = append(suites, NewDatasetSuite(
		loaded[dataset.StreamGreen], loaded[dataset.StreamIso], loaded[dataset.StreamRed],
		time.Duration(cfg.MinDurationS*float64(time.Second)),
	))
	return suites, nil
}
