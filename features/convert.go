package features

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/arloliu/featkit/errs"
)

// asMap converts the map shapes accepted by composite features to map[string]any.
func asMap(value any) (map[string]any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case Record:
		return v, nil
	case map[string]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}

		return out, nil
	case map[string][]string:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}

		return out, nil
	case map[string][]any:
		out := make(map[string]any, len(v))
		for k, s := range v {
			out[k] = s
		}

		return out, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, typeError("map with string keys", value)
	}

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}

	return out, nil
}

// asSlice converts any slice or array value to []any.
func asSlice(value any) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}

		return out, nil
	case string, []byte, nil:
		return nil, typeError("sequence", value)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, typeError("sequence", value)
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, nil
}

// checkKeys reports the first unexpected or missing key of m against keys.
// keys must be sorted.
func checkKeys(m map[string]any, keys []string, children map[string]Feature) error {
	extra := make([]string, 0)
	for k := range m {
		if _, ok := children[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("%w: %q (expected %q)", errs.ErrUnexpectedKey, extra, keys)
	}

	for _, k := range keys {
		if _, ok := m[k]; !ok {
			return fmt.Errorf("%w: %q", errs.ErrMissingKey, k)
		}
	}

	return nil
}

func sortedKeys(children map[string]Feature) []string {
	keys := make([]string, 0, len(children))
	for k := range children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
