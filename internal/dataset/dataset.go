package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"fip_qc/internal/models"
)

// Well-known stream names inside an epoch directory.
const (
	StreamGreen            = "green"
	StreamIso              = "iso"
	StreamRed              = "red"
	StreamGreenIsoMetadata = "camera_green_iso_metadata"
	StreamRedMetadata      = "camera_red_metadata"
	logsDir                = "Logs"
	rigInputFile           = "rig_input.json"
	sessionInputFile       = "session_input.json"
	streamExt              = ".csv"
)

// ErrStreamNotFound is returned when a named stream has no backing file.
var ErrStreamNotFound = errors.New("data stream not found")

// Dataset yields named data streams as tables.
type Dataset interface {
	Stream(name string) (*Table, error)
}

// Dir is a Dataset backed by an epoch directory of CSV logs.
type Dir struct {
	Root string
}

// Ensure implementation of Dataset at compile time.
var _ Dataset = (*Dir)(nil)

// Open returns a Dataset rooted at an epoch directory. No I/O happens until a stream is read.
func Open(root string) *Dir {
	return &Dir{Root: root}
}

// Stream reads <root>/<name>.csv.
func (d *Dir) Stream(name string) (*Table, error) {
	path := filepath.Join(d.Root, name+streamExt)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStreamNotFound, path)
		}
		return nil, fmt.Errorf("open stream %q: %w", name, err)
	}
	defer f.Close()
	return ReadCSV(f, name)
}

// RigPath is where the rig document of an epoch lives.
func (d *Dir) RigPath() string { return filepath.Join(d.Root, logsDir, rigInputFile) }

// SessionPath is where the session document of an epoch lives.
func (d *Dir) SessionPath() string { return filepath.Join(d.Root, logsDir, sessionInputFile) }

// Rig decodes Logs/rig_input.json.
func (d *Dir) Rig() (models.Rig, error) {
	var rig models.Rig
	if err := readJSON(d.RigPath(), &rig); err != nil {
		return models.Rig{}, err
	}
	return rig, nil
}

// Session decodes Logs/session_input.json.
func (d *Dir) Session() (models.Session, error) {
	var s models.Session
	if err := readJSON(d.SessionPath(), &s); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

func readJSON(path string, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Memory is an in-memory Dataset, keyed by stream name.
type Memory map[string]*Table

// Stream returns the named table or ErrStreamNotFound.
func (m Memory) Stream(name string) (*Table, error) {
	t, ok := m[name]
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: %s", ErrStreamNotFound, name)
	}
	return t, nil
}
