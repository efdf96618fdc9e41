package services

import "alfredoptarigan/jd-resume-matcher/internal/models"

// Display tokens understood by the renderers.
const (
	TokenGreen  = "green"
	TokenYellow = "yellow"
	TokenRed    = "red"
)

func BucketColor(bucket models.MatchBucket) string {
	switch bucket {
	case models.BucketStrong:
		return TokenGreen
	case models.BucketModerate:
		return TokenYellow
	}
	return TokenRed
}

// StageBadgeColor colors a stage match label. Labels other than Strong and
// Partial render as weak.
func StageBadgeColor(label string) string {
	switch label {
	case models.BucketStrong.StageLabel():
		return TokenGreen
	case models.BucketModerate.StageLabel():
		return TokenYellow
	}
	return TokenRed
}

func MarkerGlyph(marker models.Marker) string {
	switch marker {
	case models.MarkerSuccess:
		return "✅"
	case models.MarkerFailure:
		return "❌"
	}
	return "⚠️"
}

func MarkerColor(marker models.Marker) string {
	switch marker {
	case models.MarkerSuccess:
		return TokenGreen
	case models.MarkerFailure:
		return TokenRed
	}
	return TokenYellow
}
