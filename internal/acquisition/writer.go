package acquisition

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fip_qc/internal/models"
)

// FileName is the acquisition document written at the session root.
const FileName = "acquisition_fip.json"

const (
	keySessionStart = "session_start_time"
	keySessionEnd   = "session_end_time"
)

// WriteFile serializes rec to <dir>/acquisition_fip.json and returns the path.
func WriteFile(dir string, rec models.AcquisitionRecord) (string, error) {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode acquisition: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// AnnotateSession adds session_start_time/session_end_time, expressed in loc,
// to the session document at path. Other keys are preserved.
func AnnotateSession(path string, ts models.TimingSample, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("session document not found at %s: %w", path, err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	doc[keySessionStart] = ts.Start.In(loc).Format(time.RFC3339Nano)
	doc[keySessionEnd] = ts.End.In(loc).Format(time.RFC3339Nano)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, out, 0o644)
}
