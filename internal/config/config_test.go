package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault_MatchesCommissionedThresholds(t *testing.T) {
	cfg := Default()

	if cfg.QC.ClockJitterS != DefaultClockJitterS {
		t.Fatalf("clock jitter: got %v", cfg.QC.ClockJitterS)
	}
	if cfg.QC.SensorFloorLimit != DefaultSensorFloorLimit || cfg.QC.SuddenChangeLimit != DefaultSuddenChangeLimit {
		t.Fatalf("unexpected limits: %+v", cfg.QC)
	}
	if cfg.QC.MinDurationS != 900 {
		t.Fatalf("min duration: got %v", cfg.QC.MinDurationS)
	}
	if got := cfg.QC.Channel(ChannelGreen); got.FrameStride != 2 || got.ExpectedFPS != 20 {
		t.Fatalf("green channel: %+v", got)
	}
	if got := cfg.QC.Channel(ChannelRed); got.FrameStride != 1 {
		t.Fatalf("red channel: %+v", got)
	}
	if len(cfg.Session.TimingStreams) != 2 || cfg.Session.TimingStreams[0] != "camera_green_iso_metadata" {
		t.Fatalf("timing streams: %v", cfg.Session.TimingStreams)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Fatalf("token ttl: %v", cfg.Auth.TokenTTL)
	}
	if cfg.QC.ArtifactDir != "" {
		t.Fatalf("artifact export should be disabled by default")
	}
}

func TestChannel_UnknownFallsBackToStrideOne(t *testing.T) {
	q := QCConfig{}
	got := q.Channel("blue")
	if got.FrameStride != 1 || got.ExpectedFPS != 0 {
		t.Fatalf("unexpected fallback: %+v", got)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
qc:
  channels:
    red:
      frame_stride: 3
      expected_fps: 0
  sensor_floor_limit: 300
session:
  timezone: UTC
`)
	t.Setenv("FIPQC_QC_MIN_DURATION_S", "60")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.QC.SensorFloorLimit != 300 {
		t.Fatalf("sensor floor: got %v", cfg.QC.SensorFloorLimit)
	}
	if cfg.QC.MinDurationS != 60 {
		t.Fatalf("env override not applied: %v", cfg.QC.MinDurationS)
	}
	red := cfg.QC.Channel(ChannelRed)
	if red.FrameStride != 3 || red.ExpectedFPS != 0 {
		t.Fatalf("red: %+v", red)
	}
	if cfg.Location() != time.UTC {
		t.Fatalf("location: %v", cfg.Location())
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{
			name:     "bad timezone",
			body:     "session:\n  timezone: Mars/Olympus\n",
			contains: "session.timezone",
		},
		{
			name:     "bad pattern",
			body:     "qc:\n  fiber_column_pattern: '('\n",
			contains: "fiber_column_pattern",
		},
		{
			name:     "zero stride",
			body:     "qc:\n  channels:\n    green:\n      frame_stride: 0\n",
			contains: "frame_stride",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Fatalf("error %q does not mention %q", err, tt.contains)
			}
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}
