// Package value defines the field value model shared by documents and queries.
//
// Field data is held in normalized form: nil, bool, float64, string, []any
// and map[string]any. Every other Go number type is widened to float64 on the
// way in so that 5, int64(5) and 5.0 are the same value.
package value

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kailas-cloud/firemock/internal/domain"
)

// Kind classifies a normalized value. The declaration order is the cross-type sort order.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindOf returns the kind of a normalized value.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindMap
	default:
		// Normalize guarantees this is unreachable for stored data.
		return KindNull
	}
}

// Normalize converts v into the normalized value model, deep-copying containers.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, float64:
		return t, nil
	case int:
		return fromInt(int64(t))
	case int8:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int64:
		return fromInt(t)
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return float64(t), nil
	case uint16:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case uint64:
		return fromUint(t)
	case float32:
		return float64(t), nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			n, err := Normalize(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		return NormalizeMap(t)
	}
	return normalizeReflect(v)
}

// MaxSafeInteger is the largest magnitude n such that n and n+1 are both exact float64 values.
const MaxSafeInteger = 1<<53 - 1

func fromInt(n int64) (any, error) {
	if n > MaxSafeInteger || n < -MaxSafeInteger {
		return nil, fmt.Errorf("integer %d outside exact float64 range: %w", n, domain.ErrInvalidValue)
	}
	return float64(n), nil
}

func fromUint(n uint64) (any, error) {
	if n > MaxSafeInteger {
		return nil, fmt.Errorf("integer %d outside exact float64 range: %w", n, domain.ErrInvalidValue)
	}
	return float64(n), nil
}

// NormalizeMap normalizes every entry of m into a fresh map.
func NormalizeMap(m map[string]any) (map[string]any, error) {
	if m == nil {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(m))
	for k, e := range m {
		n, err := Normalize(e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}

// normalizeReflect handles typed slices and string-keyed maps ([]int, map[string]string, ...).
func normalizeReflect(v any) (any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			n, err := Normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key type %s: %w", rv.Type().Key(), domain.ErrInvalidValue)
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			n, err := Normalize(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		return Normalize(rv.Elem().Interface())
	}
	return nil, fmt.Errorf("unsupported type %T: %w", v, domain.ErrInvalidValue)
}

// Clone deep-copies a normalized value.
func Clone(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	case map[string]any:
		return CloneMap(t)
	default:
		return v
	}
}

// CloneMap deep-copies a normalized map.
func CloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, e := range m {
		out[k] = Clone(e)
	}
	return out
}

// Lookup resolves a dotted field path against data.
// A top-level key equal to the whole path wins over descending into maps.
// A path that passes through a non-map value is absent.
func Lookup(data map[string]any, path string) (any, bool) {
	if v, ok := data[path]; ok {
		return v, true
	}
	cur := data
	parts := strings.Split(path, ".")
	for i, p := range parts {
		v, ok := cur[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return nil, false
}
