package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{`[]`, `"done"`, `42`, `null`, `not json`} {
		t.Run(body, func(t *testing.T) {
			_, err := ParsePayload([]byte(body))
			require.Error(t, err)
		})
	}

	_, err := ParsePayload([]byte(`[1, 2]`))
	assert.True(t, errors.Is(err, ErrPayloadNotObject))
}

func TestParsePayload_ToleratesWrongTypes(t *testing.T) {
	body := `{
		"overall_percentage": "76%",
		"job_title": "Backend Engineer",
		"sections": [
			"not a section",
			{
				"section_name": "technical_skills",
				"match_percentage": "58",
				"section_score": 17,
				"total_possible": null,
				"project_count": 3,
				"match_results": [
					{"field": "languages", "match_status": "Full Match", "jd_value": ["Go"], "resume_value": "Go"},
					7
				]
			},
			{"section_name": "education", "match_results": "n/a"}
		],
		"stage_analysis": {"not": "a list"}
	}`

	payload, err := ParsePayload([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, 76.0, payload.OverallPercentage.Float())
	assert.Equal(t, "Backend Engineer", payload.JobTitle)
	assert.Nil(t, payload.StageAnalysis)

	require.Len(t, payload.Sections, 2)
	tech := payload.Sections[0]
	assert.Equal(t, "technical_skills", tech.Name.Text)
	assert.Equal(t, 58.0, tech.MatchPercentage.Float())
	require.NotNil(t, tech.SectionScore)
	assert.Equal(t, 17.0, tech.SectionScore.Float())
	assert.Nil(t, tech.TotalPossible)
	assert.Equal(t, "3", tech.ProjectCount.Text)
	require.Len(t, tech.MatchResults, 1)
	assert.Equal(t, []string{"Go"}, tech.MatchResults[0].JDValue.Items)
	assert.False(t, tech.MatchResults[0].ResumeValue.List)

	assert.Nil(t, payload.Sections[1].MatchResults)
}

func TestParsePayload_KeepsRawBody(t *testing.T) {
	body := []byte(`{"overall_percentage": 82, "vendor_field": {"x": 1}}`)

	payload, err := ParsePayload(body)
	require.NoError(t, err)

	assert.JSONEq(t, string(body), string(payload.Raw))
}

func TestAnalysisPayload_HasSections(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{}`, false},
		{`{"sections": null}`, false},
		{`{"sections": "none"}`, false},
		{`{"sections": []}`, true},
		{`{"sections": [{"section_name": "skills"}]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			payload, err := ParsePayload([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, payload.HasSections())
		})
	}
}

func TestParseSlot(t *testing.T) {
	for _, value := range []string{"jd", "JD_FILE", "job_description"} {
		slot, err := ParseSlot(value)
		require.NoError(t, err)
		assert.Equal(t, SlotJobDescription, slot)
	}

	slot, err := ParseSlot("resume_file")
	require.NoError(t, err)
	assert.Equal(t, SlotResume, slot)
	assert.Equal(t, "resume_file", slot.FieldName())

	_, err = ParseSlot("cover_letter")
	assert.Error(t, err)
}

func TestMatchBucket_Labels(t *testing.T) {
	assert.Equal(t, "Moderate Match", BucketModerate.Label())
	assert.Equal(t, "Partial", BucketModerate.StageLabel())
	assert.Equal(t, "Strong", BucketStrong.StageLabel())
	assert.Equal(t, "Weak", BucketWeak.StageLabel())
}
