// internal/analysis/scoring/scoring_test.go
package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"site-advisor/internal/geo"
	"site-advisor/internal/models"
)

func nearestAt(id string, distanceKm, magnitude float64) models.NearestResource {
	return models.NearestResource{
		DistanceKm: distanceKm,
		ResourceID: id,
		Name:       "resource " + id,
		Magnitude:  magnitude,
	}
}

func noResource() models.NearestResource {
	return models.NearestResource{DistanceKm: math.Inf(1)}
}

func TestEngine_ScoreCategory(t *testing.T) {
	e := NewEngine(DefaultProfile())

	tests := []struct {
		name     string
		category models.Category
		nearest  models.NearestResource
		expected float64
	}{
		{
			name:     "zero distance zero magnitude is full proximity",
			category: models.CategoryWater,
			nearest:  nearestAt("w", 0, 0),
			expected: 100,
		},
		{
			name:     "halfway to cutoff",
			category: models.CategoryWater, // cutoff 20 km
			nearest:  nearestAt("w", 10, 0),
			expected: 50,
		},
		{
			name:     "beyond cutoff only the capacity bonus remains",
			category: models.CategoryWater,
			nearest:  nearestAt("w", 25, 99), // log10(100)*5 = 10
			expected: 10,
		},
		{
			name:     "capacity bonus added to proximity",
			category: models.CategoryGreenEnergy, // cutoff 50 km
			nearest:  nearestAt("g", 25, 99),     // 50 + 10
			expected: 60,
		},
		{
			name:     "score capped at 100",
			category: models.CategoryGreenEnergy,
			nearest:  nearestAt("g", 0, 1e9),
			expected: 100,
		},
		{
			name:     "no resource scores zero",
			category: models.CategoryIndustry,
			nearest:  noResource(),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ScoreCategory(tt.category, tt.nearest)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestEngine_ScoreCategory_TransportUsesBaselineMagnitude(t *testing.T) {
	e := NewEngine(DefaultProfile())

	// Transport cutoff is 10 km; the magnitude on the resource is
	// ignored in favor of the constant baseline.
	withHugeMagnitude := e.ScoreCategory(models.CategoryTransport, nearestAt("t", 5, 1e9))
	withZeroMagnitude := e.ScoreCategory(models.CategoryTransport, nearestAt("t", 5, 0))
	assert.Equal(t, withZeroMagnitude, withHugeMagnitude)

	expected := geo.Round2(math.Min(100, 50+math.Log10(51)*5))
	assert.InDelta(t, expected, withZeroMagnitude, 1e-9)
}

func TestEngine_Score_WeightedSum(t *testing.T) {
	e := NewEngine(DefaultProfile())

	nearests := map[models.Category]models.NearestResource{
		models.CategoryGreenEnergy: nearestAt("g", 10, 200),
		models.CategoryWater:       nearestAt("w", 4, 450),
		models.CategoryIndustry:    nearestAt("i", 30, 800),
		models.CategoryTransport:   nearestAt("t", 2, 0),
	}

	site := e.Score(geo.Coordinate{Lng: 72.0, Lat: 23.0}, nearests)

	for _, s := range []float64{
		site.Scores.EnergyScore,
		site.Scores.WaterScore,
		site.Scores.IndustryScore,
		site.Scores.TransportScore,
		site.OverallScore,
	} {
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
	}

	weighted := site.Scores.EnergyScore*0.30 +
		site.Scores.WaterScore*0.25 +
		site.Scores.IndustryScore*0.25 +
		site.Scores.TransportScore*0.20
	assert.InDelta(t, geo.Round2(weighted), site.OverallScore, 1e-6)
}

func TestEngine_Score_MissingCategoriesScoreZero(t *testing.T) {
	e := NewEngine(DefaultProfile())

	site := e.Score(geo.Coordinate{Lng: 72.0, Lat: 23.0}, map[models.Category]models.NearestResource{
		models.CategoryGreenEnergy: noResource(),
		models.CategoryWater:       noResource(),
		models.CategoryIndustry:    noResource(),
		models.CategoryTransport:   noResource(),
	})

	assert.Equal(t, 0.0, site.OverallScore)
	assert.Equal(t, models.CategoryScores{}, site.Scores)
}

func TestEngine_CustomProfile(t *testing.T) {
	profile := DefaultProfile()
	profile.Weights = map[models.Category]float64{
		models.CategoryGreenEnergy: 1.0,
		models.CategoryWater:       0,
		models.CategoryIndustry:    0,
		models.CategoryTransport:   0,
	}
	e := NewEngine(profile)

	nearests := map[models.Category]models.NearestResource{
		models.CategoryGreenEnergy: nearestAt("g", 25, 0), // proximity 50
		models.CategoryWater:       nearestAt("w", 0, 0),  // proximity 100
		models.CategoryIndustry:    noResource(),
		models.CategoryTransport:   noResource(),
	}

	site := e.Score(geo.Coordinate{}, nearests)
	assert.InDelta(t, 50.0, site.OverallScore, 1e-9)
}
