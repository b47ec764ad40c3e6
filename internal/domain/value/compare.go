package value

import (
	"cmp"
	"slices"
)

// Equal reports deep equality of two normalized values.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case KindNull:
		return true
	case KindBool:
		return a.(bool) == b.(bool)
	case KindNumber:
		return a.(float64) == b.(float64)
	case KindString:
		return a.(string) == b.(string)
	case KindArray:
		return slices.EqualFunc(a.([]any), b.([]any), Equal)
	case KindMap:
		ma, mb := a.(map[string]any), b.(map[string]any)
		if len(ma) != len(mb) {
			return false
		}
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	}
	return false
}

// Comparable reports whether a range operator (<, <=, >, >=) can relate a and b.
// Only booleans, numbers and strings of the same kind are range-comparable.
func Comparable(a, b any) bool {
	ka := KindOf(a)
	if ka != KindOf(b) {
		return false
	}
	return ka == KindBool || ka == KindNumber || ka == KindString
}

// Compare totally orders two normalized values: -1, 0 or +1.
// Values of different kinds order by kind (null < bool < number < string < array < map).
func Compare(a, b any) int {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return cmp.Compare(ka, kb)
	}
	switch ka {
	case KindBool:
		return compareBool(a.(bool), b.(bool))
	case KindNumber:
		return cmp.Compare(a.(float64), b.(float64))
	case KindString:
		return cmp.Compare(a.(string), b.(string))
	case KindArray:
		return slices.CompareFunc(a.([]any), b.([]any), Compare)
	case KindMap:
		return compareMap(a.(map[string]any), b.(map[string]any))
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func compareMap(a, b map[string]any) int {
	ka := sortedKeys(a)
	kb := sortedKeys(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		if c := cmp.Compare(ka[i], kb[i]); c != 0 {
			return c
		}
		if c := Compare(a[ka[i]], b[kb[i]]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(ka), len(kb))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
