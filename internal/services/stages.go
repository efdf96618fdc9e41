package services

import (
	"strings"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

const MaxDerivedStages = 4

// DeriveStageAnalysis prefers the producer's stage analysis and otherwise
// summarizes the first sections. Never nil.
func DeriveStageAnalysis(payload *models.AnalysisPayload) []models.StageSummary {
	stages := []models.StageSummary{}
	if payload == nil {
		return stages
	}

	if len(payload.StageAnalysis) > 0 {
		for _, entry := range payload.StageAnalysis {
			stages = append(stages, models.StageSummary{
				Category:    entry.Category.Text,
				Match:       entry.Match.Text,
				Projects:    entry.Projects.Or(""),
				Criticality: entry.Criticality.Or(""),
			})
		}
		return stages
	}

	for i, section := range payload.Sections {
		if i == MaxDerivedStages {
			break
		}
		stages = append(stages, models.StageSummary{
			Category:    displayName(section.Name, "Unknown"),
			Match:       ClassifyMatch(section.MatchPercentage.Float()).StageLabel(),
			Projects:    section.ProjectCount.Or("N/A"),
			Criticality: section.Criticality.Or("Medium"),
		})
	}
	return stages
}

// displayName turns a producer key such as "technical_skills" into
// "technical skills", or returns fallback when the key is empty.
func displayName(name models.Scalar, fallback string) string {
	if !name.Truthy {
		return fallback
	}
	return strings.ReplaceAll(name.Text, "_", " ")
}
