// internal/analysis/pipeline.go

// Package analysis orchestrates a full site-selection run: catalog
// snapshot, grid sweep, parallel scoring, spatial selection, cost
// estimation and persistence.
package analysis

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"site-advisor/internal/analysis/cost"
	"site-advisor/internal/analysis/grid"
	"site-advisor/internal/analysis/nearest"
	"site-advisor/internal/analysis/scoring"
	"site-advisor/internal/analysis/selector"
	"site-advisor/internal/catalog"
	"site-advisor/internal/common/config"
	"site-advisor/internal/common/errors"
	"site-advisor/internal/common/logger"
	"site-advisor/internal/common/metrics"
	"site-advisor/internal/common/observability"
	"site-advisor/internal/geo"
	"site-advisor/internal/models"
	"site-advisor/internal/regions"
	"site-advisor/internal/repository"
)

const defaultWorkers = 8

// Result summarizes a finished analysis run.
type Result struct {
	RunID          string               `json:"runId"`
	Region         string               `json:"region"`
	Resolution     float64              `json:"resolution"`
	CandidateCount int                  `json:"candidateCount"`
	QualifiedCount int                  `json:"qualifiedCount"`
	Sites          []models.OptimalSite `json:"sites"`
	Duration       time.Duration        `json:"-"`
}

// Pipeline wires the analysis stages together. Safe for concurrent use;
// runs for the same region are serialized so the replace-write of one
// run never interleaves with another.
type Pipeline struct {
	catalog catalog.Catalog
	repo    repository.SiteRepository
	engine  *scoring.Engine
	finder  *nearest.Finder
	sel     *selector.Selector
	obs     *observability.Observability
	logger  logger.Logger

	workers   int
	threshold float64
	timeout   time.Duration

	mu          sync.Mutex
	regionLocks map[string]*sync.Mutex
}

// New builds a pipeline from its collaborators. obs may be nil when the
// deployment runs without the otel meter.
func New(
	cat catalog.Catalog,
	repo repository.SiteRepository,
	cfg config.AnalysisConfig,
	profile scoring.Profile,
	obs *observability.Observability,
	log logger.Logger,
) *Pipeline {
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	opts := selector.DefaultOptions()
	if cfg.ScoreThreshold > 0 {
		opts.ScoreThreshold = cfg.ScoreThreshold
	}
	if cfg.MinSiteDistanceKm > 0 {
		opts.MinDistanceKm = cfg.MinSiteDistanceKm
	}
	if cfg.MaxSelectedSites > 0 {
		opts.MaxSites = cfg.MaxSelectedSites
	}

	return &Pipeline{
		catalog:     cat,
		repo:        repo,
		engine:      scoring.NewEngine(profile),
		finder:      nearest.NewFinder(log),
		sel:         selector.New(opts, log),
		obs:         obs,
		logger:      log.WithFields(map[string]interface{}{"component": "analysis.pipeline"}),
		workers:     workers,
		threshold:   opts.ScoreThreshold,
		timeout:     time.Duration(cfg.RunTimeoutSecs) * time.Second,
		regionLocks: make(map[string]*sync.Mutex),
	}
}

// Run executes a full analysis for the region and persists the result
// set, replacing any previous run's sites for that region.
func (p *Pipeline) Run(ctx context.Context, region string, resolution float64) (*Result, error) {
	if strings.TrimSpace(region) == "" {
		return nil, errors.NewInvalidRequestError("region must not be empty")
	}
	if resolution <= 0 {
		return nil, errors.NewInvalidRequestError("grid resolution must be > 0")
	}

	lock := p.regionLock(region)
	lock.Lock()
	defer lock.Unlock()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	runID := uuid.NewString()
	log := p.logger.WithFields(map[string]interface{}{
		"runId":      runID,
		"region":     region,
		"resolution": resolution,
	})
	log.Info("analysis run started", nil)

	result, err := p.run(ctx, log, runID, region, resolution)
	duration := time.Since(start)

	status := "success"
	if err != nil {
		status = "failed"
		if errors.IsInsufficientResources(err) {
			status = "insufficient_resources"
		} else if errors.CodeOf(err) == errors.ErrCodeAnalysisTimeout {
			status = "timeout"
		}
	}

	metrics.AnalysisRuns.WithLabelValues(region, status).Inc()
	metrics.AnalysisDuration.WithLabelValues(region).Observe(duration.Seconds())
	if p.obs != nil {
		p.obs.RecordRun(ctx, region, status)
		p.obs.RecordRunDuration(ctx, duration, region)
	}

	if err != nil {
		log.WithError(err).Error("analysis run finished", map[string]interface{}{
			"status":   status,
			"duration": duration.String(),
		})
		return nil, err
	}

	result.Duration = duration
	log.Info("analysis run finished", map[string]interface{}{
		"status":     status,
		"duration":   duration.String(),
		"candidates": result.CandidateCount,
		"qualified":  result.QualifiedCount,
		"selected":   len(result.Sites),
	})
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, log logger.Logger, runID, region string, resolution float64) (*Result, error) {
	snapshot, err := p.catalog.Query(ctx, region)
	if err != nil {
		return nil, err
	}

	// Fatal precondition: every category must have at least one resource
	// before any candidate is generated.
	if empty := snapshot.EmptyCategories(); len(empty) > 0 {
		names := make([]string, len(empty))
		for i, c := range empty {
			names[i] = string(c)
		}
		return nil, errors.NewInsufficientResourcesError(region, names)
	}

	sweep, err := grid.New(region, resolution)
	if err != nil {
		return nil, err
	}

	scored, err := p.scoreGrid(ctx, sweep, snapshot)
	if err != nil {
		return nil, err
	}
	metrics.CandidatesScored.WithLabelValues(region).Add(float64(len(scored)))

	qualified := 0
	for _, site := range scored {
		if site.OverallScore > p.threshold {
			qualified++
		}
	}

	selected := p.sel.Select(scored)

	sites := make([]models.OptimalSite, 0, len(selected))
	for _, sel := range selected {
		sites = append(sites, p.toOptimalSite(sel, region))
	}

	if err := p.repo.ReplaceRegion(ctx, region, sites); err != nil {
		return nil, err
	}
	metrics.SitesSelected.WithLabelValues(region).Add(float64(len(sites)))

	return &Result{
		RunID:          runID,
		Region:         region,
		Resolution:     resolution,
		CandidateCount: sweep.Count(),
		QualifiedCount: qualified,
		Sites:          sites,
	}, nil
}

// scoreGrid fans the sweep out over the worker pool and collects every
// scored candidate back in sweep order, so the downstream stable sort
// stays deterministic across runs.
func (p *Pipeline) scoreGrid(ctx context.Context, sweep *grid.Sweep, snapshot *models.ResourceSnapshot) ([]models.ScoredSite, error) {
	type job struct {
		idx   int
		point geo.Coordinate
	}
	type scoredJob struct {
		idx  int
		site models.ScoredSite
	}

	jobs := make(chan job)
	results := make(chan scoredJob, p.workers)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				nearests := make(map[models.Category]models.NearestResource, len(models.Categories))
				for _, cat := range models.Categories {
					nearests[cat] = p.finder.Find(j.point, snapshot.Resources[cat])
				}
				select {
				case results <- scoredJob{idx: j.idx, site: p.engine.Score(j.point, nearests)}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		idx := 0
		for {
			point, ok := sweep.Next()
			if !ok {
				return
			}
			select {
			case jobs <- job{idx: idx, point: point}:
				idx++
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	scored := make([]scoredJob, 0, sweep.Count())
	for r := range results {
		scored = append(scored, r)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewAnalysisTimeoutError(snapshot.Region, err)
	}

	sort.Slice(scored, func(i, k int) bool { return scored[i].idx < scored[k].idx })

	out := make([]models.ScoredSite, len(scored))
	for i, s := range scored {
		out[i] = s.site
	}
	return out, nil
}

func (p *Pipeline) toOptimalSite(sel selector.SelectedSite, region string) models.OptimalSite {
	site := sel.Site
	out := models.OptimalSite{
		ID:               uuid.NewString(),
		Location:         site.Location,
		District:         regions.DistrictFor(site.Location, region),
		Region:           region,
		Scores:           site.Scores,
		OverallScore:     site.OverallScore,
		NearestResources: site.NearestResources,
		EstimatedCosts:   cost.Estimate(site.AverageResourceDistanceKm()),
		IsGoldenLocation: sel.Golden,
	}
	// Not-found sentinels carry +Inf and must never reach JSON output.
	out.NearestResources = out.FoundNearestResources()
	return out
}

func (p *Pipeline) regionLock(region string) *sync.Mutex {
	key := strings.ToLower(strings.TrimSpace(region))
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.regionLocks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	p.regionLocks[key] = l
	return l
}
