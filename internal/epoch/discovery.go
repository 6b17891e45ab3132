// Package epoch locates the acquisition epochs of a session directory.
package epoch

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"fip_qc/internal/logger"
	"fip_qc/internal/models"
)

// ErrInvalidSessionPath is returned before any scan when the session root is unusable.
var ErrInvalidSessionPath = errors.New("invalid session path")

// Discovery scans <root>/<EpochDir> for directories matching Glob.
type Discovery struct {
	epochDir string
	glob     string
	log      *logger.Logger
}

func NewDiscovery(epochDir, glob string, log *logger.Logger) *Discovery {
	if log == nil {
		log = logger.NewNop()
	}
	return &Discovery{epochDir: epochDir, glob: glob, log: log}
}

// Scan validates root and returns the epochs under it in lexical order.
// The sequence re-reads the directory on every iteration, so it can be ranged
// over repeatedly. Entries that are not directories are ignored; directories
// that cannot be stat'ed or listed are skipped with a warning.
func (d *Discovery) Scan(root string) (iter.Seq[models.Epoch], error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSessionPath, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidSessionPath, root)
	}
	if _, err := filepath.Match(d.glob, ""); err != nil {
		return nil, fmt.Errorf("epoch glob %q: %w", d.glob, err)
	}

	base := filepath.Join(root, d.epochDir)
	return func(yield func(models.Epoch) bool) {
		entries, err := os.ReadDir(base)
		if err != nil {
			d.log.Warnw("epoch_dir_unreadable", "dir", base, "err", err)
			return
		}
		for _, e := range entries {
			if ok, _ := filepath.Match(d.glob, e.Name()); !ok {
				continue
			}
			path := filepath.Join(base, e.Name())
			if !d.usable(path) {
				continue
			}
			if !yield(models.Epoch{ID: e.Name(), Path: path}) {
				return
			}
		}
	}, nil
}

// usable follows symlinks and checks the candidate is a listable directory.
func (d *Discovery) usable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		d.log.Warnw("epoch_skipped", "path", path, "err", err)
		return false
	}
	if !info.IsDir() {
		return false
	}
	if _, err := os.ReadDir(path); err != nil {
		d.log.Warnw("epoch_skipped", "path", path, "err", err)
		return false
	}
	return true
}
