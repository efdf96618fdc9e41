package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"alfredoptarigan/jd-resume-matcher/internal/models"
)

const MaxKeySkills = 6

type SkillsShape int

const (
	SkillsAbsent SkillsShape = iota
	SkillsList
	SkillsMapping
)

func (s SkillsShape) String() string {
	switch s {
	case SkillsList:
		return "list"
	case SkillsMapping:
		return "mapping"
	}
	return "absent"
}

// SkillsSource is the tagged result of shape detection.
type SkillsSource struct {
	Shape   SkillsShape
	List    []json.RawMessage
	Mapping []SkillEntry
}

// SkillEntry is one name/years pair of a skills mapping, in document order.
type SkillEntry struct {
	Name  string
	Years models.Scalar
}

type skillsRule func(raw json.RawMessage) (SkillsSource, bool)

// skillsRules run in order against the chosen skills field.
var skillsRules = []skillsRule{
	detectSkillsList,
	detectSkillsMapping,
}

// DetectSkills picks the first non-empty skills field (key_skills, then
// skills) and classifies its shape.
func DetectSkills(payload *models.AnalysisPayload) SkillsSource {
	if payload == nil {
		return SkillsSource{}
	}

	raw := firstTruthy(payload.KeySkills, payload.Skills)
	if raw == nil {
		return SkillsSource{}
	}

	for _, rule := range skillsRules {
		if source, ok := rule(raw); ok {
			return source
		}
	}
	return SkillsSource{}
}

// ExtractKeySkills returns at most MaxKeySkills skills; never nil.
func ExtractKeySkills(payload *models.AnalysisPayload) []models.Skill {
	source := DetectSkills(payload)
	skills := []models.Skill{}

	switch source.Shape {
	case SkillsList:
		for _, raw := range source.List {
			if len(skills) == MaxKeySkills {
				break
			}
			skills = append(skills, skillFromListEntry(raw))
		}
	case SkillsMapping:
		for _, entry := range source.Mapping {
			if len(skills) == MaxKeySkills {
				break
			}
			skills = append(skills, models.Skill{
				Name:  entry.Name,
				Years: entry.Years.Or("N/A"),
			})
		}
	}

	return skills
}

func detectSkillsList(raw json.RawMessage) (SkillsSource, bool) {
	if raw[0] != '[' {
		return SkillsSource{}, false
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return SkillsSource{}, false
	}
	return SkillsSource{Shape: SkillsList, List: list}, true
}

func detectSkillsMapping(raw json.RawMessage) (SkillsSource, bool) {
	if raw[0] != '{' {
		return SkillsSource{}, false
	}
	entries, err := decodeOrderedObject(raw)
	if err != nil {
		return SkillsSource{}, false
	}
	return SkillsSource{Shape: SkillsMapping, Mapping: entries}, true
}

// decodeOrderedObject walks a JSON object keeping key order. A repeated key
// keeps its first position and its last value.
func decodeOrderedObject(raw json.RawMessage) ([]SkillEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var entries []SkillEntry
	seen := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", keyTok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}

		entry := SkillEntry{Name: key, Years: models.ParseScalar(value)}
		if idx, dup := seen[key]; dup {
			entries[idx] = entry
			continue
		}
		seen[key] = len(entries)
		entries = append(entries, entry)
	}

	return entries, nil
}

// skillFromListEntry keeps a list entry as sent: a bare string is the name,
// an object contributes its name and years.
func skillFromListEntry(raw json.RawMessage) models.Skill {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var entry struct {
			Name  models.Scalar `json:"name"`
			Years models.Scalar `json:"years"`
		}
		if err := json.Unmarshal(raw, &entry); err == nil {
			name := entry.Name.Text
			if !entry.Name.Truthy {
				name = models.ParseScalar(raw).Text
			}
			return models.Skill{Name: name, Years: entry.Years.Or("")}
		}
	}
	return models.Skill{Name: models.ParseScalar(raw).Text}
}

// firstTruthy returns the first candidate that is present and not a falsy
// JSON value (null, false, 0, "").
func firstTruthy(candidates ...json.RawMessage) json.RawMessage {
	for _, raw := range candidates {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			continue
		}
		if raw[0] == '[' || raw[0] == '{' {
			return raw
		}
		if models.ParseScalar(raw).Truthy {
			return raw
		}
	}
	return nil
}
