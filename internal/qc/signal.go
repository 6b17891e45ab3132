package qc

import (
	"fmt"
	"iter"
	"regexp"

	"fip_qc/internal/dataset"
)

// SignalOptions holds the photometry signal thresholds.
type SignalOptions struct {
	SensorFloorLimit  float64
	SuddenChangeLimit float64
	FiberColumns      *regexp.Regexp
}

// SignalSuite checks the photometry traces of one color channel.
type SignalSuite struct {
	channel string
	data    *dataset.Table
	loadErr error
	opts    SignalOptions
	plot    func(title, yLabel string, x, y []float64, limit, level float64) (Figure, error)
}

var _ Suite = (*SignalSuite)(nil)

func NewSignalSuite(channel string, data *dataset.Table, loadErr error, opts SignalOptions) *SignalSuite {
	return &SignalSuite{channel: channel, data: data, loadErr: loadErr, opts: opts, plot: traceFigure}
}

func (s *SignalSuite) Name() string { return "signal_" + s.channel }

func (s *SignalSuite) Checks() []Check {
	return []Check{
		Single("sensor_floor", s.SensorFloor),
		Single("nan_count", s.NaNCount),
		FanOut("sudden_change", s.SuddenChange),
	}
}

// SensorFloor takes the median of the background trace as the floor of the
// detector and fails above the limit. The trace plot is attached either way;
// when it cannot be drawn the reason is appended to the message.
func (s *SignalSuite) SensorFloor() Result {
	if s.data == nil {
		return missingStream(s.channel, s.loadErr)
	}
	bg, ok := s.data.Float(colBackground)
	if !ok {
		return Skip("Column %s is missing from %s.", colBackground, s.data.Name())
	}
	floor, ok := median(bg)
	if !ok {
		return Skip("Column %s has no finite values.", colBackground)
	}

	var res Result
	if floor > s.opts.SensorFloorLimit {
		res = Fail("Sensor floor %g exceeds limit %g.", floor, s.opts.SensorFloorLimit)
	} else {
		res = Pass("Sensor floor %g is within limit %g.", floor, s.opts.SensorFloorLimit)
	}
	res = res.WithValue(floor)
	fig, err := s.plot(s.channel+" background", colBackground, s.data.Index(), bg, s.opts.SensorFloorLimit, floor)
	if err != nil {
		res.Message += fmt.Sprintf(" Trace plot unavailable: %v.", err)
		return res
	}
	return res.WithContext(fig)
}

// NaNCount fails when any cell of the channel table is missing.
func (s *SignalSuite) NaNCount() Result {
	if s.data == nil {
		return missingStream(s.channel, s.loadErr)
	}
	n := s.data.NaNCount()
	if n > 0 {
		return Fail("Found %d missing values in %s.", n, s.data.Name()).WithValue(float64(n))
	}
	return Pass("No missing values in %s.", s.data.Name()).WithValue(0)
}

// SuddenChange yields one result per fiber column, failing the columns whose
// largest sample-to-sample step exceeds the limit.
func (s *SignalSuite) SuddenChange() iter.Seq[Result] {
	return func(yield func(Result) bool) {
		if s.data == nil {
			yield(missingStream(s.channel, s.loadErr))
			return
		}
		matched := 0
		for _, col := range s.data.Columns() {
			if s.opts.FiberColumns == nil || !s.opts.FiberColumns.MatchString(col) {
				continue
			}
			matched++
			vals, ok := s.data.Float(col)
			if !ok {
				res := Fail("Column %s in %s is not numeric.", col, s.data.Name()).WithTarget(col)
				if !yield(res) {
					return
				}
				continue
			}
			if !yield(s.suddenChange(col, vals)) {
				return
			}
		}
		if matched == 0 {
			yield(Skip("No fiber columns found in %s.", s.data.Name()))
		}
	}
}

func (s *SignalSuite) suddenChange(col string, vals []float64) Result {
	step, ok := maxAbs(diff(vals))
	if !ok {
		return Skip("Not enough samples in %s.", col).WithTarget(col)
	}
	if step > s.opts.SuddenChangeLimit {
		return Fail("Sudden change of %g counts in %s exceeds limit %g.", step, col, s.opts.SuddenChangeLimit).
			WithValue(step).WithTarget(col)
	}
	return Pass("Largest step in %s is %g counts.", col, step).WithValue(step).WithTarget(col)
}
