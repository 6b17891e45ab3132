package acquisition

import (
	"sort"
	"strconv"
	"time"

	"fip_qc/internal/logger"
	"fip_qc/internal/models"
)

// Calibrations returns one entry per rig light source, in rig declaration order.
func Calibrations(rig models.Rig, date time.Time, log *logger.Logger) []models.CalibrationEntry {
	if log == nil {
		log = logger.NewNop()
	}
	out := make([]models.CalibrationEntry, 0, 3)
	for _, ls := range rig.LightSources() {
		out = append(out, calibrationFor(ls, date.UTC(), log))
	}
	return out
}

// calibrationFor scales the LUT duty cycle from a 0-1 fraction to percent. A
// light source without a LUT gets an identity percent->percent entry so the
// record stays complete.
func calibrationFor(ls models.NamedLightSource, date time.Time, log *logger.Logger) models.CalibrationEntry {
	cal := ls.Source.Calibration
	if cal == nil || len(cal.Output.PowerLUT) == 0 {
		log.Warnw("calibration_missing", "device", ls.Name, "fallback", "unitless identity [0,100]")
		return models.CalibrationEntry{
			DeviceName:      ls.Name,
			CalibrationDate: date,
			Input:           []float64{0, 100},
			Output:          []float64{0, 100},
			InputUnit:       models.UnitPercent,
			OutputUnit:      models.UnitPercent,
		}
	}

	type point struct{ in, out float64 }
	points := make([]point, 0, len(cal.Output.PowerLUT))
	for k, v := range cal.Output.PowerLUT {
		duty, err := strconv.ParseFloat(k, 64)
		if err != nil {
			log.Warnw("calibration_point_ignored", "device", ls.Name, "duty_cycle", k, "err", err)
			continue
		}
		points = append(points, point{in: duty * 100, out: v})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].in < points[j].in })

	entry := models.CalibrationEntry{
		DeviceName:      ls.Name,
		CalibrationDate: date,
		Input:           make([]float64, 0, len(points)),
		Output:          make([]float64, 0, len(points)),
		InputUnit:       models.UnitPercent,
		OutputUnit:      models.UnitMilliwatt,
	}
	if cal.Date != nil {
		entry.CalibrationDate = cal.Date.UTC()
	}
	for _, p := range points {
		entry.Input = append(entry.Input, p.in)
		entry.Output = append(entry.Output, p.out)
	}
	return entry
}
