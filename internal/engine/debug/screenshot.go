// Package debug writes frame captures for inspecting renderer output.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/logger"
)

// Screenshots names and writes PNG captures into a directory.
type Screenshots struct {
	Dir    string
	Prefix string

	now func() time.Time
}

// NewScreenshots creates a capture writer. An empty dir writes to the working directory.
func NewScreenshots(dir, prefix string) *Screenshots {
	if prefix == "" {
		prefix = "frame"
	}
	return &Screenshots{Dir: dir, Prefix: prefix, now: time.Now}
}

// Filename returns the path the next capture of the given frame is written to.
func (s *Screenshots) Filename(frame uint64) string {
	name := fmt.Sprintf("%s_%s_%06d.png", s.Prefix, s.now().Format("2006-01-02_15-04-05"), frame)
	return filepath.Join(s.Dir, name)
}

// Save encodes img as PNG and returns the written path.
func (s *Screenshots) Save(img image.Image, frame uint64) (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return "", fmt.Errorf("creating screenshot dir: %w", err)
		}
	}

	path := s.Filename(frame)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}

	logger.Info("screenshot saved", zap.String("path", path), zap.Uint64("frame", frame))
	return path, nil
}
