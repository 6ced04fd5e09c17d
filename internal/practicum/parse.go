package practicum

import "encoding/json"

const (
	homeworksKey   = "homeworks"
	currentDateKey = "current_date"
)

// Homeworks validates the shape of a decoded API document and returns the
// submissions list, possibly empty, unmodified.
func Homeworks(doc any) ([]any, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, &Error{Kind: KindNotAMapping}
	}
	v, ok := m[homeworksKey]
	if !ok || v == nil {
		return nil, &Error{Kind: KindMissingKey, Detail: homeworksKey}
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &Error{Kind: KindWrongType, Detail: homeworksKey}
	}
	return list, nil
}

// CurrentDate extracts the server-echoed poll time. The monitor advances its
// cursor to this value after a non-empty cycle.
func CurrentDate(doc any) (int64, error) {
	m, ok := doc.(map[string]any)
	if !ok {
		return 0, &Error{Kind: KindNotAMapping}
	}
	v, ok := m[currentDateKey]
	if !ok || v == nil {
		return 0, &Error{Kind: KindMissingKey, Detail: currentDateKey}
	}
	n, ok := asInt64(v)
	if !ok {
		return 0, &Error{Kind: KindWrongType, Detail: currentDateKey}
	}
	return n, nil
}

// asInt64 accepts the numeric shapes a decoded JSON document can carry.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		n, err := x.Int64()
		return n, err == nil
	case float64:
		return int64(x), true
	case int64:
		return x, true
	case int:
		return int64(x), true
	default:
		return 0, false
	}
}
