package tablestate

import (
	"encoding/json"
	"strconv"
)

// Record is a loosely structured row as decoded from a list endpoint.
// The only shape requirement the table state puts on a record is a
// unique key field: "pk", falling back to "id".
type Record map[string]any

// PrimaryKey returns the record's unique key. ok is false when the
// record carries neither a "pk" nor an "id" field, or the field does
// not hold a number.
func (r Record) PrimaryKey() (pk int64, ok bool) {
	for _, field := range []string{"pk", "id"} {
		if v, present := r[field]; present {
			if pk, ok = toInt64(v); ok {
				return pk, true
			}
		}
	}
	return 0, false
}

// String returns the named field rendered as a string, or "" if the
// field is absent or null. JSON numbers come back from decoding as
// float64; integral values are printed without a fraction.
func (r Record) String(field string) string {
	v, present := r[field]
	if !present || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Float returns the named field as a float64, or 0 if absent or not
// numeric.
func (r Record) Float(field string) float64 {
	switch t := r[field].(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return 0
	}
}

// Bool returns the named field as a bool; absent or non-bool fields
// read as false.
func (r Record) Bool(field string) bool {
	b, _ := r[field].(bool)
	return b
}

// Nested returns a nested object field (e.g. a serialized foreign-key
// detail) as a Record, or nil.
func (r Record) Nested(field string) Record {
	if m, ok := r[field].(map[string]any); ok {
		return Record(m)
	}
	return nil
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
