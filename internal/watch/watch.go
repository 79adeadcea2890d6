// Package watch re-imports a dataset file whenever it changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/TobiSchelling/lifelens/internal/compose"
	"github.com/TobiSchelling/lifelens/internal/database"
	"github.com/TobiSchelling/lifelens/internal/lifedata"
)

// DefaultDebounce collapses the burst of events a single save produces.
const DefaultDebounce = 500 * time.Millisecond

// Watcher calls OnChange after the watched file is written or recreated
// and has then been quiet for Debounce.
type Watcher struct {
	Path     string
	OnChange func(ctx context.Context) error
	Debounce time.Duration
	logger   *zap.Logger
}

// New creates a watcher for path.
func New(path string, onChange func(ctx context.Context) error, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		Path:     path,
		OnChange: onChange,
		Debounce: DefaultDebounce,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled. The parent directory is watched so
// that editors which replace the file on save are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", w.Path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	w.logger.Info("watching dataset", zap.String("path", abs))

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.logger.Debug("dataset changed", zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.OnChange(ctx); err != nil {
				w.logger.Error("reload failed", zap.String("path", abs), zap.Error(err))
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", zap.Error(err))
		}
	}
}

// Reloader imports a dataset file into a period and recomposes its report,
// so the aggregation is always rebuilt from the current inputs.
type Reloader struct {
	DB       *database.DB
	Composer *compose.Composer
	PeriodID string
	Path     string
	Logger   *zap.Logger
}

// Reload performs one import and compose cycle.
func (r *Reloader) Reload(ctx context.Context) error {
	ds, err := lifedata.LoadDataset(r.Path)
	if err != nil {
		return err
	}
	res, err := r.DB.ImportDataset(r.PeriodID, *ds)
	if err != nil {
		return err
	}
	if _, err := r.Composer.ComposeReport(ctx, r.PeriodID); err != nil {
		return err
	}
	if r.Logger != nil {
		r.Logger.Info("dataset reloaded",
			zap.String("period", r.PeriodID),
			zap.Int("new_posts", res.Posts),
			zap.Int("locations", res.Locations),
			zap.Int("activities", res.Activities))
	}
	return nil
}
