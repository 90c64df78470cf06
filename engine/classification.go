/*
classification.go - Job classification from weighted criteria scores

PURPOSE:
  Maps six criteria scores (complexity, knowledge, autonomy, contribution,
  supervision/cooperation, communication) to a (group, class) pair through
  the convention's fixed scoring grid, or accepts a manual override pair.

THE GRID:
  Scores are integers 1-10 on six independent axes, so their sum ranges
  over [6,60]. The grid is an ordered list of disjoint [min,max] bands
  that partition [6,60] exactly: every sum maps to one and only one
  class. Totality is asserted by tests, not re-checked at runtime.

EXEMPT TIER:
  Classes at or above ExemptClassThreshold are "cadre" (exempt/management
  tier) and follow different schedule and bonus rules. Classes 11 and 12
  are additionally junior-eligible: workers with less than six years of
  total professional experience are paid from a reduced junior schedule.

DEGRADE-GRACEFULLY:
  The UI always supplies valid scores, but Classify still validates and
  reports ErrInvalidScores so that callers can fall back to the lowest
  class instead of crashing. ActiveClassification applies exactly that
  fallback.

SEE ALSO:
  - convention/tables.go: Base-salary and rate tables keyed by class
  - calculator.go: Uses ActiveClassification as step one of every pass
*/
package engine

// ExemptClassThreshold is the first exempt-tier ("cadre") class.
const ExemptClassThreshold = 11

// scoreBand maps an inclusive score-sum range to a classification.
type scoreBand struct {
	min, max int
	group    byte
	class    int
}

// scoreGrid partitions [6,60]. Classes 1-10 sit in width-4 bands, the
// exempt classes 11-17 in width-2 bands, and class 18 takes the top score
// alone. Two classes per group, groups A through I.
var scoreGrid = []scoreBand{
	{6, 9, 'A', 1},
	{10, 13, 'A', 2},
	{14, 17, 'B', 3},
	{18, 21, 'B', 4},
	{22, 25, 'C', 5},
	{26, 29, 'C', 6},
	{30, 33, 'D', 7},
	{34, 37, 'D', 8},
	{38, 41, 'E', 9},
	{42, 45, 'E', 10},
	{46, 47, 'F', 11},
	{48, 49, 'F', 12},
	{50, 51, 'G', 13},
	{52, 53, 'G', 14},
	{54, 55, 'H', 15},
	{56, 57, 'H', 16},
	{58, 59, 'I', 17},
	{60, 60, 'I', 18},
}

// LowestClassification is the safe default when scores are invalid.
var LowestClassification = Classification{Group: 'A', Class: 1}

// Classify maps six criteria scores to a classification by summing them
// and scanning the grid. Scores outside [1,10] yield ErrInvalidScores and
// the lowest classification; callers must use the returned value either way.
func Classify(scores [6]int) (Classification, error) {
	sum := 0
	for i, s := range scores {
		if s < 1 || s > 10 {
			return LowestClassification, &ScoreError{Index: i, Value: s}
		}
		sum += s
	}
	for _, band := range scoreGrid {
		if sum >= band.min && sum <= band.max {
			return Classification{Group: band.group, Class: band.class}, nil
		}
	}
	// Unreachable while the grid partitions [6,60]; kept as the same safe
	// default the validation path uses.
	return LowestClassification, ErrInvalidScores
}

// ActiveClassification returns the profile's manual pair when manual mode
// is on, otherwise the computed pair with the lowest-class fallback on
// invalid scores. There is no other fallback logic.
func ActiveClassification(p WorkerProfile) Classification {
	if p.ManualClass {
		return Classification{Group: p.ManualGroup, Class: p.ManualLevel}
	}
	c, _ := Classify(p.Scores)
	return c
}

// IsExemptTier reports whether a class is in the exempt ("cadre") tier.
func IsExemptTier(class int) bool { return class >= ExemptClassThreshold }

// IsJuniorEligible reports whether a class can be paid from the junior
// schedule while professional experience is below the threshold.
func IsJuniorEligible(class int) bool {
	return class == ExemptClassThreshold || class == ExemptClassThreshold+1
}
