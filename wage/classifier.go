package wage

import (
	"math"

	"github.com/warp/wage-engine/holiday"
)

// Classifier maps a user-entered holiday count onto a work-pattern archetype
// of a resolved period. Implementations are swappable without touching the
// wage arithmetic.
type Classifier interface {
	Classify(baseHolidays float64, count holiday.Count) (holiday.Archetype, bool)
}

// DefaultTolerance is how far, in days, a holiday count may be from an
// archetype baseline and still match it.
const DefaultTolerance = 2

// ToleranceClassifier picks the archetype whose baseline is nearest to the
// base holiday count, provided it is within Tolerance days. Ties keep the
// archetype listed first in holiday.Archetypes.
type ToleranceClassifier struct {
	Tolerance float64
}

// DefaultClassifier is the ±2 day tolerance classifier.
var DefaultClassifier Classifier = ToleranceClassifier{Tolerance: DefaultTolerance}

func (c ToleranceClassifier) Classify(baseHolidays float64, count holiday.Count) (holiday.Archetype, bool) {
	if !finite(baseHolidays) {
		return "", false
	}

	var (
		best     holiday.Archetype
		bestDiff = math.Inf(1)
	)
	for _, a := range holiday.Archetypes {
		diff := math.Abs(baseHolidays - float64(count.Baseline(a)))
		if diff <= c.Tolerance && diff < bestDiff {
			best, bestDiff = a, diff
		}
	}
	return best, best != ""
}
