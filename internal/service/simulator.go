package service

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"fip_qc/internal/dataset"
	"fip_qc/internal/logger"
	"fip_qc/internal/models"
)

// ----------- Simulation defaults -----------
const (
	SimDefaultFPS        = 20.0
	SimDefaultFrames     = 200
	SimDefaultFibers     = 4
	SimDefaultBackground = 210.0
	simEpochGap          = 5 * time.Second
	simBaseline          = 1000.0
	simStep              = 5000.0
	simEpochDir          = "fib"
	simLogsDir           = "Logs"
)

// SimParams shapes a synthetic session. Injection rows <= 0 disable the fault.
type SimParams struct {
	Epochs     int
	Frames     int
	FPS        float64
	Fibers     int
	Background float64
	Start      time.Time
	Subject    string
	// Calibrated adds a duty-cycle LUT to the blue light source.
	Calibrated bool

	DropFrameAt int // green row whose frame counter skips one frame
	StepAt      int // red Fiber_0 row that jumps above the sudden-change limit
	NaNAt       int // iso Fiber_0 row left empty
}

// DefaultSimParams returns one clean epoch of nominal data.
func DefaultSimParams() SimParams {
	return SimParams{
		Epochs:     1,
		Frames:     SimDefaultFrames,
		FPS:        SimDefaultFPS,
		Fibers:     SimDefaultFibers,
		Background: SimDefaultBackground,
		Start:      time.Date(2025, 7, 18, 19, 3, 19, 0, time.UTC),
		Subject:    "000000",
		Calibrated: true,
	}
}

// SimulatorService generates session directories laid out like a rig would.
type SimulatorService struct {
	log *logger.Logger
}

// NewSimulatorService returns a simulator logging to log.
func NewSimulatorService(log *logger.Logger) *SimulatorService {
	if log == nil {
		log = logger.NewNop()
	}
	return &SimulatorService{log: log}
}

// Generate writes a session under dir and returns the session root.
func (s *SimulatorService) Generate(dir string, p SimParams) (string, error) {
	if p.Epochs <= 0 || p.Frames < 2 || p.FPS <= 0 {
		return "", errors.New("simulator: need at least one epoch, two frames and a positive fps")
	}
	if p.Start.IsZero() {
		p.Start = DefaultSimParams().Start
	}
	p.Start = p.Start.UTC()

	root := filepath.Join(dir, fmt.Sprintf("%s_%s", p.Subject, p.Start.Format("2006-01-02T150405")))
	epochLen := time.Duration(p.Frames) * framePeriod(p.FPS)

	for k := range p.Epochs {
		start := p.Start.Add(time.Duration(k) * (epochLen + simEpochGap))
		epochPath := filepath.Join(root, simEpochDir, "fip_"+start.Format("2006-01-02T150405"))
		if err := s.writeEpoch(epochPath, start, p); err != nil {
			return "", err
		}
	}
	s.log.Infow("session_simulated", "root", root, "epochs", p.Epochs, "frames", p.Frames)
	return root, nil
}

func (s *SimulatorService) writeEpoch(path string, start time.Time, p SimParams) error {
	if err := os.MkdirAll(filepath.Join(path, simLogsDir), 0o755); err != nil {
		return fmt.Errorf("simulator: %w", err)
	}

	period := framePeriod(p.FPS)
	ref := make([]float64, p.Frames)
	for i := range ref {
		ref[i] = (time.Duration(i) * period).Seconds()
	}

	channels := []struct {
		name   string
		stride int
		offset int
	}{
		{dataset.StreamGreen, 2, 0},
		{dataset.StreamIso, 2, 1},
		{dataset.StreamRed, 1, 0},
	}
	for _, ch := range channels {
		rows := channelRows(ch.name, ref, ch.stride, ch.offset, p)
		if err := writeCSV(filepath.Join(path, ch.name+".csv"), channelHeader(p.Fibers), rows); err != nil {
			return err
		}
	}

	metaHeader := []string{"ReferenceTime", "CameraFrameNumber", "CameraFrameTime", "CpuTime"}
	for _, name := range []string{dataset.StreamGreenIsoMetadata, dataset.StreamRedMetadata} {
		rows := make([][]string, len(ref))
		for i, t := range ref {
			cpu := start.Add(time.Duration(i) * period)
			rows[i] = []string{ftoa(t), strconv.Itoa(i), ftoa(t * 1e9), cpu.Format(time.RFC3339Nano)}
		}
		if err := writeCSV(filepath.Join(path, name+".csv"), metaHeader, rows); err != nil {
			return err
		}
	}

	if err := writeJSONFile(filepath.Join(path, simLogsDir, "rig_input.json"), simRig(p)); err != nil {
		return err
	}
	return writeJSONFile(filepath.Join(path, simLogsDir, "session_input.json"), models.Session{
		Subject:      p.Subject,
		Experiment:   "FIP",
		Experimenter: []string{"simulator"},
		Date:         p.Start,
		SessionName:  filepath.Base(path),
	})
}

// framePeriod rounds the frame interval to whole nanoseconds so host and
// device clocks agree exactly.
func framePeriod(fps float64) time.Duration {
	return time.Duration(float64(time.Second) / fps)
}

func channelHeader(fibers int) []string {
	h := []string{"ReferenceTime", "CameraFrameNumber", "CameraFrameTime", "Background"}
	for f := range fibers {
		h = append(h, fmt.Sprintf("Fiber_%d", f))
	}
	return h
}

func channelRows(name string, ref []float64, stride, offset int, p SimParams) [][]string {
	rows := make([][]string, len(ref))
	skipped := 0
	for i, t := range ref {
		if name == dataset.StreamGreen && p.DropFrameAt > 0 && i == p.DropFrameAt {
			skipped = stride
		}
		row := []string{
			ftoa(t),
			strconv.Itoa(offset + i*stride + skipped),
			ftoa(t * 1e9),
			ftoa(p.Background),
		}
		for f := range p.Fibers {
			v := simBaseline + 50*math.Sin(2*math.Pi*t/10+float64(f))
			cell := ftoa(v)
			switch {
			case f == 0 && name == dataset.StreamRed && p.StepAt > 0 && i == p.StepAt:
				cell = ftoa(v + simStep)
			case f == 0 && name == dataset.StreamIso && p.NaNAt > 0 && i == p.NaNAt:
				cell = ""
			}
			row = append(row, cell)
		}
		rows[i] = row
	}
	return rows
}

func simRig(p SimParams) models.Rig {
	rig := models.Rig{
		RigName:         "fip_simulated_rig",
		CameraGreenIso:  models.FipCamera{DeviceType: "FipCamera", SerialNumber: "SIM-GI-0001"},
		CameraRed:       models.FipCamera{DeviceType: "FipCamera", SerialNumber: "SIM-R-0001"},
		LightSourceUV:   models.LightSource{DeviceType: "LightSource", Power: 20},
		LightSourceBlue: models.LightSource{DeviceType: "LightSource", Power: 20},
		LightSourceLime: models.LightSource{DeviceType: "LightSource", Power: 20},
	}
	if p.Calibrated {
		cal := &models.LightSourceCalibration{}
		cal.Output.PowerLUT = map[string]float64{"0.1": 0.4, "0.5": 2.0, "1.0": 4.1}
		rig.LightSourceBlue.Calibration = cal
	}
	return rig
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("simulator: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("simulator: write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("simulator: write %s: %w", path, err)
	}
	return f.Close()
}

func writeJSONFile(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
