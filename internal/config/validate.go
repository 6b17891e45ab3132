package config

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var errEmptyTimingStreams = errors.New("session.timing_streams must list at least one stream")

// Validate rejects configurations that would make every run meaningless.
func (c *Config) Validate() error {
	if c.Session.EpochGlob == "" {
		return errors.New("session.epoch_glob must not be empty")
	}
	if len(c.Session.TimingStreams) == 0 {
		return errEmptyTimingStreams
	}
	if _, err := time.LoadLocation(c.Session.Timezone); err != nil {
		return fmt.Errorf("session.timezone %q: %w", c.Session.Timezone, err)
	}
	if _, err := regexp.Compile(c.QC.FiberColumnPattern); err != nil {
		return fmt.Errorf("qc.fiber_column_pattern: %w", err)
	}
	for name, ch := range c.QC.Channels {
		if ch.FrameStride < 1 {
			return fmt.Errorf("qc.channels.%s.frame_stride must be >= 1, got %d", name, ch.FrameStride)
		}
		if ch.ExpectedFPS < 0 {
			return fmt.Errorf("qc.channels.%s.expected_fps must be >= 0", name)
		}
	}
	for key, v := range map[string]float64{
		"qc.clock_jitter_s":       c.QC.ClockJitterS,
		"qc.frame_period_std_s":   c.QC.FramePeriodStdS,
		"qc.frame_period_rel_tol": c.QC.FramePeriodRelTol,
		"qc.sudden_change_limit":  c.QC.SuddenChangeLimit,
		"qc.min_duration_s":       c.QC.MinDurationS,
	} {
		if v < 0 {
			return fmt.Errorf("%s must be >= 0", key)
		}
	}
	return nil
}

// Location resolves the configured local timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Session.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
