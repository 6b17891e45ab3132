package qc

import (
	"fmt"

	"fip_qc/internal/models"
)

// Status is the verdict of a single check.
type Status string

const (
	StatusPass  Status = "pass"
	StatusFail  Status = "fail"
	StatusSkip  Status = "skip"
	StatusError Status = "error"
)

// Result is one verdict. Suite and Check are filled in by the Runner when a
// check leaves them empty; Target names the sub-channel of a fan-out check.
type Result struct {
	Suite   string
	Check   string
	Target  string
	Status  Status
	Message string
	Value   *float64
	// Context carries optional diagnostics, e.g. a Figure to be exported.
	Context any
}

func Pass(format string, args ...any) Result {
	return Result{Status: StatusPass, Message: fmt.Sprintf(format, args...)}
}

func Fail(format string, args ...any) Result {
	return Result{Status: StatusFail, Message: fmt.Sprintf(format, args...)}
}

func Skip(format string, args ...any) Result {
	return Result{Status: StatusSkip, Message: fmt.Sprintf(format, args...)}
}

// WithValue attaches the observed value.
func (r Result) WithValue(v float64) Result {
	r.Value = &v
	return r
}

// WithContext attaches a diagnostic payload.
func (r Result) WithContext(ctx any) Result {
	r.Context = ctx
	return r
}

// WithTarget names the sub-channel this result is about.
func (r Result) WithTarget(target string) Result {
	r.Target = target
	return r
}

// Failing reports whether the result counts against the run.
func (r Result) Failing() bool {
	return r.Status == StatusFail || r.Status == StatusError
}

// Record converts the result to its persisted form. artifact is the exported
// file path, or empty.
func (r Result) Record(artifact string) models.QCResultRecord {
	return models.QCResultRecord{
		Suite:    r.Suite,
		Check:    r.Check,
		Target:   r.Target,
		Status:   string(r.Status),
		Message:  r.Message,
		Value:    r.Value,
		Artifact: artifact,
	}
}
