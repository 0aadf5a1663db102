package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Osub/ckb/pkg/logging"
)

// WatchDebounce is how long Watch waits after the last change before reloading.
var WatchDebounce = 300 * time.Millisecond

// LoadFunc loads, overrides and validates the document at path. Reload with a fixed
// lookup is the usual implementation.
type LoadFunc func(path string) (*Config, []error)

// WatchFunc receives the reloaded config (nil when it could not be loaded) together
// with every load, override and validation error.
type WatchFunc func(cfg *Config, errs []error)

// Watch reloads the document at path with load whenever an operator edits it and
// reports the result to onChange. The parent directory is watched so editors that replace the
// file on save are handled. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, load LoadFunc, logger *logging.ColoredLogger, onChange WatchFunc) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch config directory: %w", err)
	}
	logger.ComponentInfo(logging.ComponentConfig, "Watching config file for changes", zap.String("path", target))

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.ComponentInfo(logging.ComponentConfig, "Config watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.ComponentDebug(logging.ComponentConfig, "Config file changed", zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(WatchDebounce)
			} else {
				timer.Reset(WatchDebounce)
			}
			reload = timer.C

		case <-reload:
			reload = nil
			cfg, errs := load(target)
			if len(errs) > 0 {
				logger.ComponentWarn(logging.ComponentConfig, "Config file has problems", zap.Int("count", len(errs)))
			} else {
				logger.ComponentInfo(logging.ComponentConfig, "Config file is valid")
			}
			onChange(cfg, errs)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.ComponentError(logging.ComponentConfig, "Config watcher error", zap.Error(err))
		}
	}
}

// Reload performs the start-up sequence for path: load, apply environment overrides
// and validate. The config is nil only when the file could not be loaded.
func Reload(path string, lookup LookupFunc) (*Config, []error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, []error{err}
	}
	errs := ApplyEnvOverrides(cfg, lookup)
	errs = append(errs, cfg.Validate()...)
	return cfg, errs
}
