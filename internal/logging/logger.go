// Package logging constructs the application logger from config.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/statuspress/statuspress/internal/config"
)

// New builds the hclog logger for the process. When cfg.LogFile is set,
// output is duplicated to the file and color is disabled so the file stays
// grep-friendly. The returned closer is non-nil only when a file was opened;
// call Close when done.
func New(cfg *config.Config) (hclog.Logger, io.Closer, error) {
	level := hclog.Info
	if cfg.Verbose {
		level = hclog.Debug
	}

	opts := &hclog.LoggerOptions{
		Name:   "statuspress",
		Level:  level,
		Output: os.Stdout,
		Color:  hclog.AutoColor,
	}

	var closer io.Closer
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		opts.Output = io.MultiWriter(os.Stdout, f)
		opts.Color = hclog.ColorOff
		closer = f
	}

	return hclog.New(opts), closer, nil
}
