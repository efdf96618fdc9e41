package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Scalar is a loosely typed JSON leaf. It never fails to decode: strings,
// numbers and booleans keep a display text, anything else is carried as its
// compact JSON. Truthy follows the producer's notion of an empty value
// (null, false, 0 and "" are falsy).
type Scalar struct {
	Text   string
	Truthy bool
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	*s = ParseScalar(data)
	return nil
}

func (s Scalar) String() string {
	return s.Text
}

// Or returns the scalar text, or fallback when the scalar is falsy.
func (s Scalar) Or(fallback string) string {
	if !s.Truthy {
		return fallback
	}
	return s.Text
}

func ParseScalar(data []byte) Scalar {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Scalar{}
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return Scalar{}
		}
		return Scalar{Text: text, Truthy: text != ""}
	case 't', 'f':
		truthy := bytes.Equal(data, []byte("true"))
		return Scalar{Text: string(data), Truthy: truthy}
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return Scalar{}
		}
		return Scalar{Text: buf.String(), Truthy: true}
	}

	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return Scalar{}
	}
	return Scalar{
		Text:   strconv.FormatFloat(value, 'f', -1, 64),
		Truthy: value != 0 && !math.IsNaN(value),
	}
}

// Number is a percentage or score that tolerates numeric strings ("82",
// "82.5%") and degrades anything else to zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number(parseNumber(data))
	return nil
}

func (n Number) Float() float64 {
	return float64(n)
}

func parseNumber(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0
	}

	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return 0
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "%")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// FieldValue is a job description or resume value, which the producer sends
// either as a single string or as a list of strings.
type FieldValue struct {
	Items []string
	List  bool
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			*v = FieldValue{}
			return nil
		}
		items := make([]string, 0, len(raws))
		for _, raw := range raws {
			items = append(items, ParseScalar(raw).Text)
		}
		*v = FieldValue{Items: items, List: true}
		return nil
	}

	scalar := ParseScalar(data)
	if scalar.Text == "" {
		*v = FieldValue{}
		return nil
	}
	*v = FieldValue{Items: []string{scalar.Text}}
	return nil
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.List {
		items := v.Items
		if items == nil {
			items = []string{}
		}
		return json.Marshal(items)
	}
	return json.Marshal(v.Text())
}

// Text joins the value into a single display string.
func (v FieldValue) Text() string {
	return strings.Join(v.Items, ", ")
}

func (v FieldValue) Empty() bool {
	if v.List {
		return len(v.Items) == 0
	}
	return v.Text() == ""
}

// decodeList decodes a JSON array element by element, skipping elements of
// the wrong shape. Anything other than an array (null included) yields nil.
func decodeList[T any](data []byte) []T {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil || raws == nil {
		return nil
	}

	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items
}
