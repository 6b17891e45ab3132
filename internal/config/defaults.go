package config

import (
	"time"

	"github.com/spf13/viper"
)

// Defaults mirror the thresholds the rig was commissioned with.
const (
	DefaultClockJitterS       = 1e-4
	DefaultFramePeriodStdS    = 1e-4
	DefaultFramePeriodRelTol  = 0.01
	DefaultSuddenChangeLimit  = 2000
	DefaultSensorFloorLimit   = 265
	DefaultMinDurationS       = 15 * 60
	DefaultFiberColumnPattern = `^Fiber_\d+$`
	DefaultExpectedFPS        = 20
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")

	v.SetDefault("session.epoch_dir", "fib")
	v.SetDefault("session.epoch_glob", "fip_*")
	v.SetDefault("session.timing_streams", []string{"camera_green_iso_metadata", "camera_red_metadata"})
	v.SetDefault("session.timing_column", "CpuTime")
	v.SetDefault("session.timezone", "America/Los_Angeles")

	v.SetDefault("acquisition.write_json", true)
	v.SetDefault("acquisition.annotate_session", false)

	v.SetDefault("qc.channels.green.frame_stride", 2)
	v.SetDefault("qc.channels.green.expected_fps", DefaultExpectedFPS)
	v.SetDefault("qc.channels.iso.frame_stride", 2)
	v.SetDefault("qc.channels.iso.expected_fps", DefaultExpectedFPS)
	v.SetDefault("qc.channels.red.frame_stride", 1)
	v.SetDefault("qc.channels.red.expected_fps", DefaultExpectedFPS)
	v.SetDefault("qc.clock_jitter_s", DefaultClockJitterS)
	v.SetDefault("qc.frame_period_std_s", DefaultFramePeriodStdS)
	v.SetDefault("qc.frame_period_rel_tol", DefaultFramePeriodRelTol)
	v.SetDefault("qc.sudden_change_limit", DefaultSuddenChangeLimit)
	v.SetDefault("qc.sensor_floor_limit", DefaultSensorFloorLimit)
	v.SetDefault("qc.min_duration_s", DefaultMinDurationS)
	v.SetDefault("qc.fiber_column_pattern", DefaultFiberColumnPattern)
	v.SetDefault("qc.artifact_dir", "")

	v.SetDefault("db.path", "fipqc.db")
	v.SetDefault("server.port", "8080")
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", time.Hour)
}
