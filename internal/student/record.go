package student

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a raw student row as supplied by the dashboard. Only the
// identity fields are required; missing metrics are filled by Extract.
// Fields the engine does not recognise are kept in Extra and emitted
// unchanged on every derived record.
type Record struct {
	ID    string
	Name  string
	Class string

	AverageGrade *float64
	Attendance   *float64
	Attitude     *float64
	Tasks        *int
	Grades       []float64

	Extra map[string]any
}

// Float returns a pointer to v, for building records in code.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building records in code.
func Int(v int) *int { return &v }

var knownKeys = map[string]bool{
	"id": true, "name": true, "class": true,
	"averageGrade": true, "attendance": true, "attitude": true,
	"tasks": true, "grades": true,
}

// Fields returns the record as a flat JSON-ready map: pass-through fields
// first, then identity and whichever metrics are present.
func (r Record) Fields() map[string]any {
	m := make(map[string]any, len(r.Extra)+8)
	for k, v := range r.Extra {
		m[k] = v
	}
	m["id"] = r.ID
	m["name"] = r.Name
	m["class"] = r.Class
	if r.AverageGrade != nil {
		m["averageGrade"] = *r.AverageGrade
	}
	if r.Attendance != nil {
		m["attendance"] = *r.Attendance
	}
	if r.Attitude != nil {
		m["attitude"] = *r.Attitude
	}
	if r.Tasks != nil {
		m["tasks"] = *r.Tasks
	}
	if len(r.Grades) > 0 {
		m["grades"] = r.Grades
	}
	return m
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Record
	if v, ok := raw["id"]; ok {
		id, err := decodeID(v)
		if err != nil {
			return fmt.Errorf("id: %w", err)
		}
		out.ID = id
	}
	if err := decodeField(raw, "name", &out.Name); err != nil {
		return err
	}
	if err := decodeField(raw, "class", &out.Class); err != nil {
		return err
	}
	if err := decodeField(raw, "averageGrade", &out.AverageGrade); err != nil {
		return err
	}
	if err := decodeField(raw, "attendance", &out.Attendance); err != nil {
		return err
	}
	if err := decodeField(raw, "attitude", &out.Attitude); err != nil {
		return err
	}
	if err := decodeField(raw, "tasks", &out.Tasks); err != nil {
		return err
	}
	if err := decodeField(raw, "grades", &out.Grades); err != nil {
		return err
	}

	for k, v := range raw {
		if knownKeys[k] {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
		if out.Extra == nil {
			out.Extra = make(map[string]any)
		}
		out.Extra[k] = val
	}

	*r = out
	return nil
}

func decodeField(raw map[string]json.RawMessage, key string, dst any) error {
	v, ok := raw[key]
	if !ok || bytes.Equal(v, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// decodeID accepts both string and numeric ids; the dashboard sends either.
func decodeID(v json.RawMessage) (string, error) {
	if bytes.Equal(v, []byte("null")) {
		return "", nil
	}
	if len(v) > 0 && v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err != nil {
		return "", err
	}
	return n.String(), nil
}
