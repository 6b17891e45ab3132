package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"fip_qc/internal/logger"
	"fip_qc/internal/qc"
)

const ext = ".png"

// Renderable is a result payload that can be written to the artifact sink.
type Renderable interface {
	WriteTo(w io.Writer) (int64, error)
}

// Exporter writes renderable result contexts to a directory.
type Exporter struct {
	dir    string
	log    *logger.Logger
	suffix func() string
}

// NewExporter returns an exporter writing into dir. An empty dir disables export.
func NewExporter(dir string, log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.NewNop()
	}
	return &Exporter{dir: dir, log: log, suffix: randomSuffix}
}

// Enabled reports whether a destination is configured.
func (e *Exporter) Enabled() bool { return e != nil && e.dir != "" }

// Name builds the artifact file name for a result.
func (e *Exporter) Name(suite, check string) string {
	return fmt.Sprintf("%s_%s_%s%s", sanitize(suite), sanitize(check), e.suffix(), ext)
}

// Export writes the context of res when it is renderable and returns the file
// path. It returns "" when export is disabled or there is nothing to write.
// Failures are logged, never returned: verdicts do not depend on artifacts.
func (e *Exporter) Export(res qc.Result) string {
	if !e.Enabled() {
		return ""
	}
	r, ok := res.Context.(Renderable)
	if !ok {
		return ""
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		e.log.Warnw("artifact_export_failed", "dir", e.dir, "error", err)
		return ""
	}
	check := res.Check
	if res.Target != "" {
		check += "_" + res.Target
	}
	path := filepath.Join(e.dir, e.Name(res.Suite, check))
	if err := writeFile(path, r); err != nil {
		e.log.Warnw("artifact_export_failed", "path", path, "error", err)
		return ""
	}
	e.log.Debugw("artifact_exported", "path", path)
	return path
}

// ExportAll exports every renderable result of a report. The returned map is
// keyed by the result position within its suite.
func (e *Exporter) ExportAll(rep qc.Report) map[string]map[int]string {
	out := make(map[string]map[int]string)
	if !e.Enabled() {
		return out
	}
	for _, suite := range rep.Suites {
		for i, res := range rep.BySuite[suite] {
			if p := e.Export(res); p != "" {
				if out[suite] == nil {
					out[suite] = make(map[int]string)
				}
				out[suite][i] = p
			}
		}
	}
	return out
}

func writeFile(path string, r Renderable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := r.WriteTo(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '-'
		}
		return r
	}, s)
}
