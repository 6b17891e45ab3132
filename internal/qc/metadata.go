package qc

import (
	"math"

	"fip_qc/internal/dataset"
)

// MetadataOptions parameterizes the camera metadata checks of one channel.
type MetadataOptions struct {
	FrameStride int
	// ExpectedFPS of zero disables the frame-rate check.
	ExpectedFPS       float64
	ClockJitterS      float64
	FramePeriodStdS   float64
	FramePeriodRelTol float64
}

// MetadataSuite checks frame counters and clocks of one camera channel.
type MetadataSuite struct {
	channel string
	data    *dataset.Table
	loadErr error
	opts    MetadataOptions
}

var _ Suite = (*MetadataSuite)(nil)

// NewMetadataSuite binds a channel table. A nil table makes every check skip;
// loadErr, when set, explains why the table is missing.
func NewMetadataSuite(channel string, data *dataset.Table, loadErr error, opts MetadataOptions) *MetadataSuite {
	return &MetadataSuite{channel: channel, data: data, loadErr: loadErr, opts: opts}
}

func (s *MetadataSuite) Name() string { return "metadata_" + s.channel }

func (s *MetadataSuite) Checks() []Check {
	return []Check{
		Single("dropped_frames", s.DroppedFrames),
		Single("clock_jitter", s.ClockJitter),
		Single("frame_rate", s.FrameRate),
	}
}

// DroppedFrames fails when consecutive frame numbers do not advance by exactly the stride.
func (s *MetadataSuite) DroppedFrames() Result {
	frames, res, ok := s.column(colFrameNumber)
	if !ok {
		return res
	}
	stride := float64(s.opts.FrameStride)
	violations := 0
	for _, d := range diff(frames) {
		if math.IsNaN(d) {
			continue
		}
		if d != stride {
			violations++
		}
	}
	if violations > 0 {
		return Fail("Detected %d frame counter steps different from stride %d.", violations, s.opts.FrameStride).
			WithValue(float64(violations))
	}
	return Pass("No dropped frames detected in metadata.").WithValue(0)
}

// ClockJitter fails when the device frame clock and the host reference clock
// disagree on any inter-frame interval by more than the jitter tolerance.
func (s *MetadataSuite) ClockJitter() Result {
	frameTime, res, ok := s.column(colFrameTime)
	if !ok {
		return res
	}
	devDiff := diff(frameTime)
	refDiff := diff(s.data.Index())
	drift := make([]float64, len(devDiff))
	for i := range devDiff {
		drift[i] = devDiff[i]*frameTimeToSeconds - refDiff[i]
	}
	worst, found := maxAbs(drift)
	if !found {
		return Skip("Not enough frames to compare clocks.")
	}
	if worst > s.opts.ClockJitterS {
		return Fail("Detected a difference between %s and %s of %g s, greater than the threshold %g s.",
			colFrameTime, s.data.IndexName(), worst, s.opts.ClockJitterS).WithValue(worst)
	}
	return Pass("Clock drift %g s is within %g s.", worst, s.opts.ClockJitterS).WithValue(worst)
}

// FrameRate compares the inter-frame period against the expected frame rate.
func (s *MetadataSuite) FrameRate() Result {
	if s.opts.ExpectedFPS <= 0 {
		return Skip("No expected FPS provided, skipping test.")
	}
	if s.data == nil {
		return s.missing()
	}
	period := finite(diff(s.data.Index()))
	if len(period) == 0 {
		return Skip("Not enough frames to estimate the frame period.")
	}
	mean, std := popMeanStd(period)
	if std > s.opts.FramePeriodStdS {
		return Fail("High std in frame period detected: %g s.", std).WithValue(std)
	}
	expected := 1.0 / s.opts.ExpectedFPS
	if math.Abs(mean-expected) > expected*s.opts.FramePeriodRelTol {
		return Fail("Mean frame period (%g s) is different than expected: %g s.", mean, expected).WithValue(mean)
	}
	return Pass("Mean frame period (%g s) is within expected range: %g s.", mean, expected).WithValue(mean)
}

func (s *MetadataSuite) column(name string) ([]float64, Result, bool) {
	if s.data == nil {
		return nil, s.missing(), false
	}
	vals, ok := s.data.Float(name)
	if !ok {
		return nil, Skip("Column %s is missing from %s.", name, s.data.Name()), false
	}
	return vals, Result{}, true
}

func (s *MetadataSuite) missing() Result {
	return missingStream(s.channel, s.loadErr)
}

func missingStream(channel string, err error) Result {
	if err != nil {
		return Skip("Stream %s unavailable: %v", channel, err)
	}
	return Skip("Stream %s unavailable.", channel)
}
