// internal/analysis/scoring/scoring.go

// Package scoring converts nearest-distance/magnitude pairs into a
// weighted 0-100 viability score.
package scoring

import (
	"math"

	"site-advisor/internal/common/config"
	"site-advisor/internal/geo"
	"site-advisor/internal/models"
)

// capacityBonusFactor scales the logarithmic magnitude bonus. The log10
// keeps one oversized asset from saturating a category score.
const capacityBonusFactor = 5.0

// Profile is the immutable scoring configuration injected into the
// engine: per-category weights and distance cutoffs plus the constant
// magnitude baseline used for transportation links.
type Profile struct {
	Weights           map[models.Category]float64
	MaxDistanceKm     map[models.Category]float64
	TransportBaseline float64
}

// DefaultProfile returns the canonical production profile: weights
// .30/.25/.25/.20 and cutoffs 50/20/100/10 km for green energy, water,
// industry and transport respectively.
func DefaultProfile() Profile {
	return Profile{
		Weights: map[models.Category]float64{
			models.CategoryGreenEnergy: 0.30,
			models.CategoryWater:       0.25,
			models.CategoryIndustry:    0.25,
			models.CategoryTransport:   0.20,
		},
		MaxDistanceKm: map[models.Category]float64{
			models.CategoryGreenEnergy: 50,
			models.CategoryWater:       20,
			models.CategoryIndustry:    100,
			models.CategoryTransport:   10,
		},
		TransportBaseline: 50,
	}
}

// ProfileFromConfig builds a profile from the scoring config section,
// letting deployments substitute alternate weight tables without
// touching engine code.
func ProfileFromConfig(cfg config.ScoringConfig) Profile {
	return Profile{
		Weights: map[models.Category]float64{
			models.CategoryGreenEnergy: cfg.Weights.GreenEnergy,
			models.CategoryWater:       cfg.Weights.Water,
			models.CategoryIndustry:    cfg.Weights.Industry,
			models.CategoryTransport:   cfg.Weights.Transport,
		},
		MaxDistanceKm: map[models.Category]float64{
			models.CategoryGreenEnergy: cfg.MaxDistancesKm.GreenEnergy,
			models.CategoryWater:       cfg.MaxDistancesKm.Water,
			models.CategoryIndustry:    cfg.MaxDistancesKm.Industry,
			models.CategoryTransport:   cfg.MaxDistancesKm.Transport,
		},
		TransportBaseline: cfg.TransportBaseline,
	}
}

// Engine scores candidates against an immutable profile. Scoring is a
// pure function of its inputs, safe to call from many goroutines.
type Engine struct {
	profile Profile
}

func NewEngine(profile Profile) *Engine {
	return &Engine{profile: profile}
}

// ScoreCategory computes one category's sub-score from the nearest
// resource. Beyond the category's distance cutoff the proximity term is
// a hard zero; the discontinuity at the cutoff is intentional.
func (e *Engine) ScoreCategory(category models.Category, nr models.NearestResource) float64 {
	maxDist := e.profile.MaxDistanceKm[category]

	proximity := 0.0
	if nr.Found() && nr.DistanceKm <= maxDist {
		proximity = (1 - nr.DistanceKm/maxDist) * 100
	}

	magnitude := nr.Magnitude
	if category == models.CategoryTransport {
		// Transportation links carry no meaningful capacity attribute;
		// a constant baseline keeps the bonus term comparable.
		magnitude = e.profile.TransportBaseline
	}
	if !nr.Found() {
		magnitude = 0
	}
	bonus := math.Log10(magnitude+1) * capacityBonusFactor

	return geo.Round2(math.Min(100, proximity+bonus))
}

// Score assembles a ScoredSite from a candidate and its per-category
// nearest resources. The overall score is the weighted sum of the four
// sub-scores, rounded to 2 decimals.
func (e *Engine) Score(candidate geo.Coordinate, nearests map[models.Category]models.NearestResource) models.ScoredSite {
	scores := models.CategoryScores{
		EnergyScore:    e.ScoreCategory(models.CategoryGreenEnergy, nearests[models.CategoryGreenEnergy]),
		WaterScore:     e.ScoreCategory(models.CategoryWater, nearests[models.CategoryWater]),
		IndustryScore:  e.ScoreCategory(models.CategoryIndustry, nearests[models.CategoryIndustry]),
		TransportScore: e.ScoreCategory(models.CategoryTransport, nearests[models.CategoryTransport]),
	}

	overall := scores.EnergyScore*e.profile.Weights[models.CategoryGreenEnergy] +
		scores.WaterScore*e.profile.Weights[models.CategoryWater] +
		scores.IndustryScore*e.profile.Weights[models.CategoryIndustry] +
		scores.TransportScore*e.profile.Weights[models.CategoryTransport]

	return models.ScoredSite{
		Location:         candidate,
		Scores:           scores,
		OverallScore:     geo.Round2(overall),
		NearestResources: nearests,
	}
}
