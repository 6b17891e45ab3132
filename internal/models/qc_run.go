package models

import "time"

// QCResultRecord is the persisted form of a single check outcome.
type QCResultRecord struct {
	Suite    string   `json:"suite"`
	Check    string   `json:"check"`
	Target   string   `json:"target,omitempty"`
	Status   string   `json:"status"` // pass | fail | skip | error
	Message  string   `json:"message"`
	Value    *float64 `json:"value,omitempty"`
	Artifact string   `json:"artifact,omitempty"`
}

// QCRun is one QC pass over one epoch.
type QCRun struct {
	ID         string           `json:"id"`
	Session    string           `json:"session"`
	Epoch      string           `json:"epoch"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Passed     int              `json:"passed"`
	Failed     int              `json:"failed"`
	Skipped    int              `json:"skipped"`
	Errored    int              `json:"errored"`
	OperatorID int              `json:"operator_id,omitempty"`
	Results    []QCResultRecord `json:"results,omitempty"`
}

// OK reports whether the run has no failing or errored checks.
func (r QCRun) OK() bool {
	return r.Failed == 0 && r.Errored == 0
}
