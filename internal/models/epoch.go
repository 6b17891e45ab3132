package models

import "time"

// Epoch is one contiguous acquisition interval inside a session, backed by a directory.
type Epoch struct {
	ID   string `json:"id"`   // folder name, e.g. fip_2025-07-18T19-03-19
	Path string `json:"path"` // absolute or session-relative directory
}

// TimingSample is the acquisition window of a single epoch. Both values are UTC.
type TimingSample struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start.
func (t TimingSample) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// EpochTiming pairs an epoch id with its extracted window.
type EpochTiming struct {
	ID    string    `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
