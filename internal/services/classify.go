package services

import (
	"math"
	"strings"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

const (
	StrongMatchThreshold   = 70.0
	ModerateMatchThreshold = 50.0
)

// ClassifyMatch buckets a percentage. Every part of the report uses these
// thresholds.
func ClassifyMatch(percentage float64) models.MatchBucket {
	switch {
	case percentage >= StrongMatchThreshold:
		return models.BucketStrong
	case percentage >= ModerateMatchThreshold:
		return models.BucketModerate
	}
	return models.BucketWeak
}

// RoundPercentage rounds half up, matching how the report displays scores.
// Values outside the int32 range are clamped and NaN rounds to zero.
func RoundPercentage(percentage float64) int {
	if math.IsNaN(percentage) {
		return 0
	}
	rounded := math.Floor(percentage + 0.5)
	return int(math.Max(math.MinInt32, math.Min(math.MaxInt32, rounded)))
}

type statusRule struct {
	outcome models.MatchOutcome
	needles []string
}

// statusRules are checked in order; the first rule with a matching needle wins.
// The service only sends free text, so this stays a substring match until it
// exposes an enumerated status.
var statusRules = []statusRule{
	{outcome: models.OutcomeFull, needles: []string{"full match", "exact match"}},
	{outcome: models.OutcomePartial, needles: []string{"partial match"}},
	{outcome: models.OutcomeNone, needles: []string{"no match", "different"}},
}

func ClassifyStatus(status string) models.MatchOutcome {
	status = strings.ToLower(status)
	for _, rule := range statusRules {
		for _, needle := range rule.needles {
			if strings.Contains(status, needle) {
				return rule.outcome
			}
		}
	}
	return models.OutcomeUnknown
}

// MarkerFor maps an outcome to its status marker. Unknown outcomes get the
// caution marker.
func MarkerFor(outcome models.MatchOutcome) models.Marker {
	switch outcome {
	case models.OutcomeFull:
		return models.MarkerSuccess
	case models.OutcomeNone:
		return models.MarkerFailure
	}
	return models.MarkerCaution
}
