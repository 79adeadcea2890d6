// Package pipeline runs collection, link fetching and report composition
// for one period.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TobiSchelling/lifelens/internal/collect"
	"github.com/TobiSchelling/lifelens/internal/compose"
	"github.com/TobiSchelling/lifelens/internal/config"
	"github.com/TobiSchelling/lifelens/internal/database"
	"github.com/TobiSchelling/lifelens/internal/fetch"
	"github.com/TobiSchelling/lifelens/internal/lifedata"
	"github.com/TobiSchelling/lifelens/internal/metrics"
)

// StepResult holds the result of a single pipeline step.
type StepResult struct {
	Name    string
	Summary string
	Err     error
}

// Result holds the results of a full pipeline run.
type Result struct {
	PeriodID string
	Steps    []StepResult
}

// Failed reports whether any step returned an error.
func (r *Result) Failed() bool {
	for _, s := range r.Steps {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Pipeline orchestrates the three-step report pipeline.
type Pipeline struct {
	cfg     *config.Config
	db      *database.DB
	agg     lifedata.Aggregator
	metrics *metrics.Collector
	logger  *zap.Logger
}

// New creates a new pipeline. It fails on an unknown aggregation mode.
func New(cfg *config.Config, db *database.DB, logger *zap.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mode, err := lifedata.ParseLocationSentimentMode(cfg.Aggregation.LocationSentiment)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:    cfg,
		db:     db,
		agg:    lifedata.Aggregator{LocationSentiment: mode},
		logger: logger,
	}, nil
}

// WithMetrics records composed reports on m.
func (p *Pipeline) WithMetrics(m *metrics.Collector) *Pipeline {
	p.metrics = m
	return p
}

// Composer returns a composer configured like the pipeline's own.
func (p *Pipeline) Composer() *compose.Composer {
	return compose.NewComposer(p.db, p.agg, p.logger).
		WithMetrics(p.metrics).
		WithPlaceRadius(p.cfg.Aggregation.PlaceRadius)
}

// Run executes the full pipeline. A failed collection stops the run; a
// failed fetch does not, since the report can be built without it.
func (p *Pipeline) Run(ctx context.Context, periodID string, daysBack int) *Result {
	r := &Result{PeriodID: periodID}

	step := p.runCollect(ctx, periodID, daysBack)
	r.Steps = append(r.Steps, step)
	if step.Err != nil {
		return r
	}

	step = p.runFetch(ctx, periodID)
	r.Steps = append(r.Steps, step)

	step = p.runCompose(ctx, periodID)
	r.Steps = append(r.Steps, step)

	return r
}

// DryRun shows what would be done without executing.
func (p *Pipeline) DryRun(periodID string) *Result {
	r := &Result{PeriodID: periodID}

	posts, _ := p.db.GetPostsForPeriod(periodID)
	r.Steps = append(r.Steps, StepResult{
		Name: "Collect",
		Summary: fmt.Sprintf("[dry-run] %d posts already in DB for %s, %d feeds configured",
			len(posts), periodID, len(p.cfg.Sources.Feeds)),
	})

	needing, _ := p.db.GetPostsNeedingFetch(&periodID)
	r.Steps = append(r.Steps, StepResult{
		Name:    "Fetch",
		Summary: fmt.Sprintf("[dry-run] %d posts need content fetching", len(needing)),
	})

	if _, err := p.db.GetReport(periodID); err == nil {
		r.Steps = append(r.Steps, StepResult{
			Name:    "Compose",
			Summary: fmt.Sprintf("[dry-run] Report already exists for %s", periodID),
		})
	} else {
		r.Steps = append(r.Steps, StepResult{
			Name:    "Compose",
			Summary: fmt.Sprintf("[dry-run] Would compose report for %s", periodID),
		})
	}

	return r
}

func (p *Pipeline) runCollect(ctx context.Context, periodID string, daysBack int) StepResult {
	p.logger.Info("step 1/3: collecting posts")
	collector := collect.NewCollector(p.cfg, p.db, daysBack, p.logger)
	result, err := collector.Collect(ctx, periodID)
	if err != nil {
		return StepResult{Name: "Collect", Err: err}
	}
	return StepResult{
		Name:    "Collect",
		Summary: fmt.Sprintf("Found %d new posts (%d total, %d duplicates)", result.NewPosts, result.TotalFound, result.Duplicates),
	}
}

func (p *Pipeline) runFetch(ctx context.Context, periodID string) StepResult {
	p.logger.Info("step 2/3: fetching linked content")
	fetcher := fetch.NewContentFetcher(p.db, 15*time.Second, p.logger)
	result, err := fetcher.FetchMissingContent(ctx, &periodID)
	if err != nil {
		return StepResult{Name: "Fetch", Err: err}
	}
	return StepResult{
		Name:    "Fetch",
		Summary: fmt.Sprintf("Fetched %d posts, %d failed", result.Fetched, result.Failed),
	}
}

func (p *Pipeline) runCompose(ctx context.Context, periodID string) StepResult {
	p.logger.Info("step 3/3: composing report")
	report, err := p.Composer().ComposeReport(ctx, periodID)
	if err != nil {
		return StepResult{Name: "Compose", Err: err}
	}
	return StepResult{
		Name: "Compose",
		Summary: fmt.Sprintf("Report composed: %d posts, %d locations, %d activity days",
			report.PostCount, report.LocationCount, report.ActivityCount),
	}
}
