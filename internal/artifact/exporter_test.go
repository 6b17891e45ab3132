package artifact

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fip_qc/internal/qc"
)

type fakeFigure struct {
	payload string
	err     error
}

func (f fakeFigure) WriteTo(w io.Writer) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	n, err := io.WriteString(w, f.payload)
	return int64(n), err
}

func TestExport_WritesNamedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	exp := NewExporter(dir, nil)

	res := qc.Pass("ok").WithContext(fakeFigure{payload: "png"})
	res.Suite, res.Check = "signal_green", "sensor_floor"

	path := exp.Export(res)
	require.NotEmpty(t, path)
	assert.Regexp(t, regexp.MustCompile(`^signal_green_sensor_floor_[0-9a-f]{12}\.png$`), filepath.Base(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", string(b))

	// repeated exports of the same check do not collide
	assert.NotEqual(t, path, exp.Export(res))
}

func TestExport_DisabledOrNotRenderable(t *testing.T) {
	res := qc.Fail("bad").WithContext(fakeFigure{payload: "png"})
	res.Suite, res.Check = "s", "c"
	assert.Empty(t, NewExporter("", nil).Export(res))

	var nilExporter *Exporter
	assert.False(t, nilExporter.Enabled())

	dir := t.TempDir()
	plain := qc.Pass("no figure")
	assert.Empty(t, NewExporter(dir, nil).Export(plain))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExport_FailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	res := qc.Pass("ok").WithContext(fakeFigure{err: errors.New("render failed")})
	res.Suite, res.Check = "s", "c"
	assert.Empty(t, NewExporter(dir, nil).Export(res))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportAll_FanOutTargetsInName(t *testing.T) {
	dir := t.TempDir()
	exp := NewExporter(dir, nil)
	exp.suffix = func() string { return "fixed" }

	a := qc.Pass("a").WithTarget("Fiber_0").WithContext(fakeFigure{payload: "x"})
	a.Suite, a.Check = "signal_red", "sudden_change"
	b := qc.Pass("b")
	b.Suite, b.Check = "signal_red", "nan_count"
	rep := qc.Report{Suites: []string{"signal_red"}, BySuite: map[string][]qc.Result{"signal_red": {a, b}}}

	paths := exp.ExportAll(rep)
	require.Len(t, paths["signal_red"], 1)
	assert.Equal(t, filepath.Join(dir, "signal_red_sudden_change_Fiber_0_fixed.png"), paths["signal_red"][0])
}
