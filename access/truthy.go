package access

// Truther lets a value decide its own truthiness.
type Truther interface {
	Truthy() bool
}

// Truthy reports whether v counts as true when used as a filter predicate.
//
// nil, false, numeric zeros, the empty string and empty slices and maps are
// false.  Values implementing Truther decide for themselves, and values with
// a Len() method are false when empty.  Everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case Truther:
		return t.Truthy()
	case interface{ Len() int }:
		return t.Len() != 0
	case string:
		return t != ""
	case int:
		return t != 0
	case int8:
		return t != 0
	case int16:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case uint:
		return t != 0
	case uint8:
		return t != 0
	case uint16:
		return t != 0
	case uint32:
		return t != 0
	case uint64:
		return t != 0
	case float32:
		return t != 0
	case float64:
		return t != 0
	case []any:
		return len(t) != 0
	case []string:
		return len(t) != 0
	case []int:
		return len(t) != 0
	case map[string]any:
		return len(t) != 0
	case map[string]string:
		return len(t) != 0
	}

	return true
}
