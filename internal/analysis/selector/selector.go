// internal/analysis/selector/selector.go

// Package selector ranks scored sites, declusters them spatially and
// classifies the top tier as golden locations.
package selector

import (
	"math"
	"sort"

	"site-advisor/internal/common/logger"
	"site-advisor/internal/geo"
	"site-advisor/internal/models"
)

// Options tune the selection pass. Defaults mirror the production
// constants; tests substitute smaller values.
type Options struct {
	ScoreThreshold float64 // sites at or below are discarded
	MinDistanceKm  float64 // pairwise declustering distance
	MaxSites       int     // accepted-set cap
}

func DefaultOptions() Options {
	return Options{
		ScoreThreshold: 20,
		MinDistanceKm:  2,
		MaxSites:       15,
	}
}

// SelectedSite is a declustered site with its golden classification.
type SelectedSite struct {
	Site   models.ScoredSite
	Golden bool
}

// Selector performs the ranked, declustered selection.
type Selector struct {
	opts   Options
	logger logger.Logger
}

func New(opts Options, log logger.Logger) *Selector {
	return &Selector{
		opts:   opts,
		logger: log.WithFields(map[string]interface{}{"component": "selector"}),
	}
}

// Select filters by score threshold, sorts descending, takes the top
// tier (max(10, 20% of N)), greedily declusters it and flags the
// best-scoring prefix as golden.
//
// The greedy walk is inherently sequential: each acceptance depends on
// the sites accepted before it. O(n^2) over the small accepted-set cap.
func (s *Selector) Select(sites []models.ScoredSite) []SelectedSite {
	qualified := make([]models.ScoredSite, 0, len(sites))
	for _, site := range sites {
		if site.OverallScore > s.opts.ScoreThreshold {
			qualified = append(qualified, site)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].OverallScore > qualified[j].OverallScore
	})

	tier := tierSize(len(qualified))
	if tier > len(qualified) {
		tier = len(qualified)
	}

	var accepted []models.ScoredSite
	for _, candidate := range qualified[:tier] {
		if len(accepted) >= s.opts.MaxSites {
			break
		}
		if s.tooClose(candidate, accepted) {
			continue
		}
		accepted = append(accepted, candidate)
	}

	golden := goldenCount(len(accepted))

	out := make([]SelectedSite, len(accepted))
	for i, site := range accepted {
		out[i] = SelectedSite{Site: site, Golden: i < golden}
	}

	s.logger.Info("site selection complete", map[string]interface{}{
		"qualified": len(qualified),
		"tier":      tier,
		"accepted":  len(accepted),
		"golden":    golden,
	})

	return out
}

func (s *Selector) tooClose(candidate models.ScoredSite, accepted []models.ScoredSite) bool {
	for _, a := range accepted {
		if geo.HaversineKm(candidate.Location, a.Location) < s.opts.MinDistanceKm {
			return true
		}
	}
	return false
}

// tierSize is max(10, 20% of N).
func tierSize(n int) int {
	tier := n / 5
	if tier < 10 {
		tier = 10
	}
	return tier
}

// goldenCount is the best-scoring prefix: half the accepted set rounded
// up, never fewer than 3, never more than the accepted count.
func goldenCount(accepted int) int {
	if accepted == 0 {
		return 0
	}
	g := int(math.Ceil(float64(accepted) / 2))
	if g < 3 {
		g = 3
	}
	if g > accepted {
		g = accepted
	}
	return g
}
