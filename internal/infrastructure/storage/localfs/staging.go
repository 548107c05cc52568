package localfs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const stagedPrefix = "upload_"

// Staging copies inputs into a managed directory so the upload reads a
// stable local file regardless of where the source lives. Staged copies
// are removed after the upload, successful or not; Sweep collects the
// leftovers of interrupted runs.
type Staging struct {
	dir string
}

func NewStaging(dir string) (*Staging, error) {
	if dir == "" {
		dir = "./data/staging"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Staging{dir: dir}, nil
}

// Stage copies the file into the staging directory and returns the staged
// path with a cleanup that removes it.
func (s *Staging) Stage(path string) (string, func(), error) {
	src, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open source file: %w", err)
	}
	defer src.Close()

	staged := filepath.Join(s.dir, stagedPrefix+uuid.NewString()+filepath.Ext(path))
	dst, err := os.Create(staged)
	if err != nil {
		return "", nil, fmt.Errorf("create staged file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(staged)
		return "", nil, fmt.Errorf("copy to staged file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(staged)
		return "", nil, fmt.Errorf("close staged file: %w", err)
	}

	cleanup := func() { _ = os.Remove(staged) }
	return staged, cleanup, nil
}

// Sweep removes staged files orphaned by prior runs. Only files carrying
// the staged prefix are touched.
func (s *Staging) Sweep() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("read staging dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), stagedPrefix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
