package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrPayloadNotObject = errors.New("analysis payload must be a JSON object")

// AnalysisPayload is the comparison service response. The producer does not
// pin its schema, so every field is optional and wrong-typed fields decode to
// zero values. Only a body that is not a JSON object fails to decode.
type AnalysisPayload struct {
	OverallPercentage Number
	JobTitle          string

	// KeySkills and Skills are kept raw; the normalizer decides their shape.
	KeySkills json.RawMessage
	Skills    json.RawMessage

	Sections      []Section
	StageAnalysis []StageEntry

	Raw json.RawMessage
}

func (p *AnalysisPayload) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrPayloadNotObject, err)
	}
	if fields == nil {
		return ErrPayloadNotObject
	}

	payload := AnalysisPayload{
		Raw:       append(json.RawMessage(nil), data...),
		KeySkills: fields["key_skills"],
		Skills:    fields["skills"],
	}
	if raw, ok := fields["overall_percentage"]; ok {
		payload.OverallPercentage = Number(parseNumber(raw))
	}
	if raw, ok := fields["job_title"]; ok {
		payload.JobTitle = ParseScalar(raw).Text
	}
	if raw, ok := fields["sections"]; ok {
		payload.Sections = decodeList[Section](raw)
	}
	if raw, ok := fields["stage_analysis"]; ok {
		payload.StageAnalysis = decodeList[StageEntry](raw)
	}

	*p = payload
	return nil
}

// HasSections mirrors the producer's "sections present" check, which treats
// an empty list as present.
func (p *AnalysisPayload) HasSections() bool {
	return p.Sections != nil
}

// ParsePayload decodes a raw service response.
func ParsePayload(body []byte) (*AnalysisPayload, error) {
	var payload AnalysisPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Section is a named category of the analysis.
type Section struct {
	Name            Scalar     `json:"section_name"`
	MatchPercentage Number     `json:"match_percentage"`
	SectionScore    *Number    `json:"section_score"`
	TotalPossible   *Number    `json:"total_possible"`
	Criticality     Scalar     `json:"criticality"`
	ProjectCount    Scalar     `json:"project_count"`
	MatchResults    ResultList `json:"match_results"`
}

// ResultList tolerates a non-array match_results value.
type ResultList []MatchResult

func (l *ResultList) UnmarshalJSON(data []byte) error {
	*l = decodeList[MatchResult](data)
	return nil
}

// MatchResult is a single compared attribute inside a section.
type MatchResult struct {
	Field       Scalar     `json:"field"`
	MatchStatus Scalar     `json:"match_status"`
	JDValue     FieldValue `json:"jd_value"`
	ResumeValue FieldValue `json:"resume_value"`
	Comments    Scalar     `json:"comments"`
}

// StageEntry is a precomputed stage analysis row.
type StageEntry struct {
	Category    Scalar `json:"category"`
	Match       Scalar `json:"match"`
	Projects    Scalar `json:"projects"`
	Criticality Scalar `json:"criticality"`
}
