// Package obshooks carries the ambient structured-logging singleton the
// driver and CLI log through — grounded on
// wippyai-wasm-runtime/engine/logger.go's package-level zap.Logger
// accessor, which the teacher itself has no equivalent of (its CLI just
// calls fmt.Printf/log.Fatalf directly).
package obshooks

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the process-wide logger, a no-op sink until Configure
// installs a real one.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// Configure installs dev (human-readable, debug level) or prod (JSON,
// info level) logging for the remainder of the process, replacing
// whatever Logger() would otherwise return — including the nop default,
// if Logger() was already called once before Configure runs.
func Configure(dev bool) error {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built
	return nil
}
