package diag

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hiredeck-utils/internal/config"
	"hiredeck-utils/internal/logging"
	"hiredeck-utils/internal/logging/types"
)

// Snapshotter persists best-effort diagnostic captures. Implementations must
// never fail the calling operation; a capture that cannot be saved is logged
// and dropped.
type Snapshotter interface {
	// Save writes a PNG capture under the given label and returns the saved
	// path, or "" when nothing was saved.
	Save(label string, png []byte) string
}

// FileSnapshotter writes captures to a local directory.
type FileSnapshotter struct {
	dir     string
	enabled bool
	logger  types.Logger
}

// NewFileSnapshotter creates a snapshotter rooted at the configured
// screenshot directory.
func NewFileSnapshotter(cfg *config.Config) *FileSnapshotter {
	return &FileSnapshotter{
		dir:     cfg.Diagnostics.ScreenshotDir,
		enabled: cfg.Diagnostics.EnableScreenshots,
		logger:  logging.GetGlobalLogger(),
	}
}

// Save writes the capture to disk. Failures are logged and swallowed.
func (fs *FileSnapshotter) Save(label string, png []byte) string {
	if !fs.enabled || len(png) == 0 {
		return ""
	}

	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		fs.logger.Warn("Failed to create screenshot directory", map[string]interface{}{
			"dir":   fs.dir,
			"error": err.Error(),
		})
		return ""
	}

	name := fmt.Sprintf("%s_%s.png", label, time.Now().Format("20060102-150405"))
	path := filepath.Join(fs.dir, name)

	if err := os.WriteFile(path, png, 0644); err != nil {
		fs.logger.Warn("Failed to save screenshot", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return ""
	}

	fs.logger.Debug("Screenshot saved", map[string]interface{}{"path": path})
	return path
}

// NopSnapshotter discards every capture. Used in tests and when diagnostics
// are disabled.
type NopSnapshotter struct{}

func (NopSnapshotter) Save(string, []byte) string { return "" }
