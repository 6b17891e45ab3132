// Package acquisition reduces per-epoch timing into the session acquisition record.
package acquisition

import (
	"errors"
	"iter"
	"time"

	"fip_qc/internal/logger"
	"fip_qc/internal/models"
)

// ErrNoValidEpochs is fatal: a session without a single timed epoch has no acquisition record.
var ErrNoValidEpochs = errors.New("no valid FIP epochs found in the session directory")

// triggerExternal is how both rig cameras are clocked.
const triggerExternal = "external"

// TimingSource extracts one epoch window.
type TimingSource interface {
	Extract(ep models.Epoch) (models.TimingSample, error)
}

// Aggregator builds the AcquisitionRecord.
type Aggregator struct {
	timing TimingSource
	log    *logger.Logger
}

func NewAggregator(timing TimingSource, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Aggregator{timing: timing, log: log}
}

// Aggregate extracts timing for every epoch, drops the ones that fail, and
// reduces the survivors to session bounds. Calibration entries come from rig
// and are dated with the session date.
func (a *Aggregator) Aggregate(epochs iter.Seq[models.Epoch], rig models.Rig, session models.Session) (models.AcquisitionRecord, error) {
	var (
		timed      []models.EpochTiming
		start, end time.Time
	)
	for ep := range epochs {
		ts, err := a.timing.Extract(ep)
		if err != nil {
			a.log.Warnw("epoch_skipped", "epoch", ep.ID, "path", ep.Path, "err", err)
			continue
		}
		s, e := ts.Start.UTC(), ts.End.UTC()
		if len(timed) == 0 || s.Before(start) {
			start = s
		}
		if len(timed) == 0 || e.After(end) {
			end = e
		}
		timed = append(timed, models.EpochTiming{ID: ep.ID, Start: s, End: e})
	}
	if len(timed) == 0 {
		return models.AcquisitionRecord{}, ErrNoValidEpochs
	}

	rec := models.AcquisitionRecord{
		SubjectID:       session.Subject,
		InstrumentID:    rig.RigName,
		AcquisitionType: session.Experiment,
		Experimenters:   session.Experimenter,
		Start:           start,
		End:             end,
		Epochs:          timed,
		DataStreams:     dataStreams(timed, rig),
		Calibrations:    Calibrations(rig, session.Date, a.log),
	}
	a.log.Infow("acquisition_aggregated", "epochs", len(timed), "start", start, "end", end)
	return rec, nil
}

func dataStreams(timed []models.EpochTiming, rig models.Rig) []models.DataStream {
	devices := rig.Devices()
	cfgs := make([]models.DetectorConfig, 0, len(rig.Cameras()))
	for _, cam := range rig.Cameras() {
		cfgs = append(cfgs, models.DetectorConfig{DeviceName: cam, TriggerType: triggerExternal})
	}
	out := make([]models.DataStream, 0, len(timed))
	for _, t := range timed {
		out = append(out, models.DataStream{
			EpochID:        t.ID,
			StreamStart:    t.Start,
			StreamEnd:      t.End,
			Modalities:     []string{models.ModalityFIB},
			ActiveDevices:  devices,
			Configurations: cfgs,
		})
	}
	return out
}
