// Package timing derives the acquisition window of an epoch from its metadata streams.
package timing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fip_qc/internal/dataset"
	"fip_qc/internal/logger"
	"fip_qc/internal/models"
)

var (
	// ErrEmptyData means a candidate stream exists but has no rows.
	ErrEmptyData = errors.New("timing stream is empty")
	// ErrTimingNotFound means no candidate stream could produce a window.
	ErrTimingNotFound = errors.New("no usable timing stream")
	// ErrMalformedTiming means the timestamp column could not be interpreted.
	ErrMalformedTiming = errors.New("malformed timing data")
)

// accepted ISO-8601 layouts; offset-less values are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
}

// Opener maps an epoch directory to its dataset.
type Opener func(root string) dataset.Dataset

// DirOpener opens epochs as CSV directories.
func DirOpener(root string) dataset.Dataset { return dataset.Open(root) }

// Extractor reads an ordered list of candidate streams; the first usable one wins.
type Extractor struct {
	candidates []string
	column     string
	open       Opener
	log        *logger.Logger
}

func NewExtractor(candidates []string, column string, open Opener, log *logger.Logger) *Extractor {
	if open == nil {
		open = DirOpener
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Extractor{candidates: candidates, column: column, open: open, log: log}
}

// Extract returns the epoch window from the first candidate stream that exists,
// has rows and carries the timestamp column. Later candidates are not read once
// one succeeds. When none succeeds the error wraps ErrTimingNotFound, and also
// ErrEmptyData if a candidate was present but empty.
func (e *Extractor) Extract(ep models.Epoch) (models.TimingSample, error) {
	ds := e.open(ep.Path)
	var causes []error
	for _, name := range e.candidates {
		tbl, err := ds.Stream(name)
		if err != nil {
			e.log.Debugw("timing_candidate_unavailable", "epoch", ep.ID, "stream", name, "err", err)
			causes = append(causes, err)
			continue
		}
		ts, err := FromTable(tbl, e.column)
		if err != nil {
			e.log.Debugw("timing_candidate_rejected", "epoch", ep.ID, "stream", name, "err", err)
			causes = append(causes, err)
			continue
		}
		return ts, nil
	}
	return models.TimingSample{}, fmt.Errorf("epoch %s: %w", ep.ID,
		errors.Join(append([]error{ErrTimingNotFound}, causes...)...))
}

// FromTable takes the first and last value of column as the window. Rows are
// trusted to be in acquisition order.
func FromTable(tbl *dataset.Table, column string) (models.TimingSample, error) {
	if tbl == nil || tbl.Empty() {
		name := ""
		if tbl != nil {
			name = tbl.Name()
		}
		return models.TimingSample{}, fmt.Errorf("stream %q: %w", name, ErrEmptyData)
	}
	values, ok := tbl.Text(column)
	if !ok {
		return models.TimingSample{}, fmt.Errorf("stream %q: %w: column %q missing or not a timestamp",
			tbl.Name(), ErrMalformedTiming, column)
	}
	start, err := ParseTimestamp(values[0])
	if err != nil {
		return models.TimingSample{}, err
	}
	end, err := ParseTimestamp(values[len(values)-1])
	if err != nil {
		return models.TimingSample{}, err
	}
	if end.Before(start) {
		return models.TimingSample{}, fmt.Errorf("stream %q: %w: end %s before start %s",
			tbl.Name(), ErrMalformedTiming, end.Format(time.RFC3339Nano), start.Format(time.RFC3339Nano))
	}
	return models.TimingSample{Start: start, End: end}, nil
}

// ParseTimestamp parses an ISO-8601 timestamp and normalizes it to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unparseable timestamp %q", ErrMalformedTiming, s)
}
