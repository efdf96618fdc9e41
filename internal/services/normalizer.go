package services

import (
	"alfredoptarigan/jd-resume-matcher/internal/models"
)

const (
	PlaceholderNoDetails            = "No detailed analysis data available"
	PlaceholderNoRequirementsListed = "No requirements specified"
	PlaceholderNoRequirements       = "No requirements"
	PlaceholderNoExperienceFound    = "No experience found"
	PlaceholderNoExperience         = "No experience"
)

// Normalize derives the report view from an analysis payload. It is pure and
// never fails: absent or malformed parts of the payload become defaults.
func Normalize(payload *models.AnalysisPayload) *models.ViewModel {
	if payload == nil {
		payload = &models.AnalysisPayload{}
	}

	overall := payload.OverallPercentage.Float()
	bucket := ClassifyMatch(overall)

	view := &models.ViewModel{
		OverallPercentage: overall,
		DisplayPercentage: RoundPercentage(overall),
		Bucket:            bucket,
		MatchLabel:        bucket.Label(),
		JobTitle:          payload.JobTitle,
		KeySkills:         ExtractKeySkills(payload),
		StageAnalysis:     DeriveStageAnalysis(payload),
		Sections:          make([]models.SectionView, 0, len(payload.Sections)),
	}

	if !payload.HasSections() {
		view.DetailsPlaceholder = PlaceholderNoDetails
	}
	for _, section := range payload.Sections {
		view.Sections = append(view.Sections, normalizeSection(section))
	}

	return view
}

func normalizeSection(section models.Section) models.SectionView {
	percentage := section.MatchPercentage.Float()
	view := models.SectionView{
		Key:               section.Name.Text,
		Name:              displayName(section.Name, "Unknown Section"),
		MatchPercentage:   percentage,
		DisplayPercentage: RoundPercentage(percentage),
		Bucket:            ClassifyMatch(percentage),
		Results:           make([]models.FieldResultView, 0, len(section.MatchResults)),
	}

	if section.SectionScore != nil && section.TotalPossible != nil {
		score := section.SectionScore.Float()
		total := section.TotalPossible.Float()
		view.Score = &score
		view.TotalPossible = &total
	}

	for _, result := range section.MatchResults {
		view.Results = append(view.Results, normalizeResult(result))
	}
	return view
}

func normalizeResult(result models.MatchResult) models.FieldResultView {
	outcome := ClassifyStatus(result.MatchStatus.Text)
	return models.FieldResultView{
		Field:          displayName(result.Field, "Unknown Field"),
		Status:         result.MatchStatus.Text,
		Outcome:        outcome,
		Marker:         MarkerFor(outcome),
		JobDescription: valueView(result.JDValue, PlaceholderNoRequirementsListed, PlaceholderNoRequirements),
		Resume:         valueView(result.ResumeValue, PlaceholderNoExperienceFound, PlaceholderNoExperience),
		Comments:       result.Comments.Or(""),
	}
}

// valueView passes the value through and attaches the placeholder for its
// shape when it is empty.
func valueView(value models.FieldValue, listPlaceholder, scalarPlaceholder string) models.ValueView {
	view := models.ValueView{Value: value}
	if !value.Empty() {
		return view
	}
	if value.List {
		view.Placeholder = listPlaceholder
	} else {
		view.Placeholder = scalarPlaceholder
	}
	return view
}
