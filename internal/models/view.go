package models

// MatchBucket is the qualitative classification of a match percentage.
type MatchBucket string

const (
	BucketStrong   MatchBucket = "Strong"
	BucketModerate MatchBucket = "Moderate"
	BucketWeak     MatchBucket = "Weak"
)

// Label is the headline text, e.g. "Strong Match".
func (b MatchBucket) Label() string {
	return string(b) + " Match"
}

// StageLabel is the badge used in the stage overview, where the middle
// bucket reads "Partial".
func (b MatchBucket) StageLabel() string {
	if b == BucketModerate {
		return "Partial"
	}
	return string(b)
}

// MatchOutcome classifies a field-level match status.
type MatchOutcome string

const (
	OutcomeFull    MatchOutcome = "full"
	OutcomePartial MatchOutcome = "partial"
	OutcomeNone    MatchOutcome = "none"
	OutcomeUnknown MatchOutcome = "unknown"
)

// Marker is the semantic status token shown next to a field result.
type Marker string

const (
	MarkerSuccess Marker = "success"
	MarkerCaution Marker = "caution"
	MarkerFailure Marker = "failure"
)

// ViewModel is the normalized, render-ready analysis report.
type ViewModel struct {
	OverallPercentage float64        `json:"overall_percentage"`
	DisplayPercentage int            `json:"display_percentage"`
	Bucket            MatchBucket    `json:"bucket"`
	MatchLabel        string         `json:"match_label"`
	JobTitle          string         `json:"job_title,omitempty"`
	KeySkills         []Skill        `json:"key_skills"`
	StageAnalysis     []StageSummary `json:"stage_analysis"`
	Sections          []SectionView  `json:"sections"`
	// DetailsPlaceholder is set when the payload carries no sections at all.
	DetailsPlaceholder string `json:"details_placeholder,omitempty"`
}

type Skill struct {
	Name  string `json:"name"`
	Years string `json:"years,omitempty"`
}

type StageSummary struct {
	Category    string `json:"category"`
	Match       string `json:"match"`
	Projects    string `json:"projects,omitempty"`
	Criticality string `json:"criticality,omitempty"`
}

type SectionView struct {
	// Key is the producer's section name, used to address the section.
	Key               string            `json:"key"`
	Name              string            `json:"name"`
	MatchPercentage   float64           `json:"match_percentage"`
	DisplayPercentage int               `json:"display_percentage"`
	Bucket            MatchBucket       `json:"bucket"`
	Score             *float64          `json:"score,omitempty"`
	TotalPossible     *float64          `json:"total_possible,omitempty"`
	Results           []FieldResultView `json:"results"`
}

// HasScore reports whether both halves of the score pair are present.
func (s SectionView) HasScore() bool {
	return s.Score != nil && s.TotalPossible != nil
}

type FieldResultView struct {
	Field          string       `json:"field"`
	Status         string       `json:"status"`
	Outcome        MatchOutcome `json:"outcome"`
	Marker         Marker       `json:"marker"`
	JobDescription ValueView    `json:"jd_value"`
	Resume         ValueView    `json:"resume_value"`
	Comments       string       `json:"comments,omitempty"`
}

// ValueView carries a job description or resume value unchanged, plus the
// placeholder to show when it is empty.
type ValueView struct {
	Value       FieldValue `json:"value"`
	Placeholder string     `json:"placeholder,omitempty"`
}
