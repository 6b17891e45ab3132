package models

import "time"

// Unit tags used on calibration axes.
const (
	UnitPercent   = "percent"
	UnitMilliwatt = "milliwatt"
)

// ModalityFIB is the modality tag stamped on every fiber-photometry data stream.
const ModalityFIB = "FIB"

// CalibrationEntry maps a light-source drive domain (duty cycle, percent) to an output domain.
// Input and Output are index-aligned and ordered by ascending input.
type CalibrationEntry struct {
	DeviceName      string    `json:"device_name"`
	CalibrationDate time.Time `json:"calibration_date"`
	Input           []float64 `json:"input"`
	Output          []float64 `json:"output"`
	InputUnit       string    `json:"input_unit"`
	OutputUnit      string    `json:"output_unit"`
}

// DetectorConfig describes how a camera was configured during acquisition.
type DetectorConfig struct {
	DeviceName  string `json:"device_name"`
	TriggerType string `json:"trigger_type"` // always "external" for this rig
}

// DataStream is one epoch expressed as an acquisition data stream.
type DataStream struct {
	EpochID        string           `json:"epoch_id"`
	StreamStart    time.Time        `json:"stream_start_time"`
	StreamEnd      time.Time        `json:"stream_end_time"`
	Modalities     []string         `json:"modalities"`
	ActiveDevices  []string         `json:"active_devices"`
	Configurations []DetectorConfig `json:"configurations"`
}

// AcquisitionRecord is the session-level acquisition metadata document.
type AcquisitionRecord struct {
	SessionPath     string             `json:"-"`
	SubjectID       string             `json:"subject_id"`
	InstrumentID    string             `json:"instrument_id"`
	AcquisitionType string             `json:"acquisition_type"`
	Experimenters   []string           `json:"experimenters"`
	Start           time.Time          `json:"acquisition_start_time"`
	End             time.Time          `json:"acquisition_end_time"`
	Epochs          []EpochTiming      `json:"epochs"`
	DataStreams     []DataStream       `json:"data_streams"`
	Calibrations    []CalibrationEntry `json:"calibrations"`
}
