package level

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DirProvider loads level_<n>.yaml files from a directory and falls back to
// another provider for numbers with no file.
type DirProvider struct {
	Dir      string
	Fallback Provider
	Log      logrus.FieldLogger
}

func NewDirProvider(dir string, fallback Provider, log logrus.FieldLogger) *DirProvider {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DirProvider{Dir: dir, Fallback: fallback, Log: log}
}

// Path is the file a level number is read from.
func (p *DirProvider) Path(n int) string {
	return filepath.Join(p.Dir, fmt.Sprintf("level_%d.yaml", n))
}

// Level reads level n. A missing file defers to the fallback; a file that
// exists but does not parse is an error.
func (p *DirProvider) Level(n int) (*Data, error) {
	path := p.Path(n)
	d, err := LoadFile(path)
	switch {
	case err == nil:
		d.Number = n
		if d.Chapter == 0 {
			d.Chapter = ChapterOf(n)
		}
		if d.Name == "" {
			d.Name = fmt.Sprintf("Level %d", n)
		}
		return d, nil
	case errors.Is(err, fs.ErrNotExist) && p.Fallback != nil:
		p.Log.WithFields(logrus.Fields{"level": n, "path": path}).Info("level file not found, using generated level")
		return p.Fallback.Level(n)
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("level %d: %w", n, ErrNoLevel)
	default:
		return nil, err
	}
}
