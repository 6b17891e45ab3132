package models

import "time"

// Point2f is a pixel coordinate.
type Point2f struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FipCamera is a camera entry of rig_input.json.
type FipCamera struct {
	DeviceType   string  `json:"device_type,omitempty"`
	SerialNumber string  `json:"serial_number"`
	Gain         float64 `json:"gain,omitempty"`
	Offset       Point2f `json:"offset,omitempty"`
}

// LightSourceCalibration carries the duty-cycle -> power lookup table.
// Keys of PowerLUT are duty cycles encoded as strings (0-1 fraction); values are mW.
type LightSourceCalibration struct {
	Date   *time.Time `json:"date,omitempty"`
	Output struct {
		PowerLUT map[string]float64 `json:"power_lut"`
	} `json:"output"`
}

// LightSource is an LED entry of rig_input.json.
type LightSource struct {
	DeviceType  string                  `json:"device_type,omitempty"`
	Power       float64                 `json:"power"`
	Calibration *LightSourceCalibration `json:"calibration,omitempty"`
}

// Rig is the subset of rig_input.json this module reads.
type Rig struct {
	RigName         string      `json:"rig_name"`
	CameraGreenIso  FipCamera   `json:"camera_green_iso"`
	CameraRed       FipCamera   `json:"camera_red"`
	LightSourceUV   LightSource `json:"light_source_uv"`
	LightSourceBlue LightSource `json:"light_source_blue"`
	LightSourceLime LightSource `json:"light_source_lime"`
}

// NamedLightSource is a light source together with its rig field name.
type NamedLightSource struct {
	Name   string
	Source LightSource
}

// LightSources returns the rig light sources in declaration order.
func (r Rig) LightSources() []NamedLightSource {
	return []NamedLightSource{
		{Name: "light_source_uv", Source: r.LightSourceUV},
		{Name: "light_source_blue", Source: r.LightSourceBlue},
		{Name: "light_source_lime", Source: r.LightSourceLime},
	}
}

// Cameras returns the rig camera field names in declaration order.
func (r Rig) Cameras() []string {
	return []string{"camera_green_iso", "camera_red"}
}

// Devices lists every device field of the rig (cameras first, then light sources).
func (r Rig) Devices() []string {
	out := r.Cameras()
	for _, ls := range r.LightSources() {
		out = append(out, ls.Name)
	}
	return out
}

// Session is the subset of session_input.json this module reads.
type Session struct {
	Subject      string    `json:"subject"`
	Experiment   string    `json:"experiment"`
	Experimenter []string  `json:"experimenter"`
	Date         time.Time `json:"date"`
	SessionName  string    `json:"session_name,omitempty"`
}
