package model

import (
	"reflect"
	"slices"
)

// FromNative converts plain Go data into a Value. Maps must have string keys;
// their keys are added in sorted order since Go maps have none.
func FromNative(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case []any:
		seq := NewSequence()

		for _, item := range v {
			elem, err := FromNative(item)
			if err != nil {
				return nil, err
			}

			seq.Append(elem)
		}

		return seq, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		mapping := NewMapping()

		for _, k := range keys {
			elem, err := FromNative(v[k])
			if err != nil {
				return nil, err
			}

			mapping.Set(k, elem)
		}

		return mapping, nil
	}

	rv := reflect.ValueOf(x)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Number(float64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}

		return FromNative(items)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, &UnsupportedValueError{Type: rv.Type().String()}
		}

		entries := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			entries[iter.Key().String()] = iter.Value().Interface()
		}

		return FromNative(entries)
	case reflect.Pointer:
		if rv.IsNil() {
			return Null{}, nil
		}

		return FromNative(rv.Elem().Interface())
	case reflect.Func:
		return nil, &UnsupportedValueError{Type: "function"}
	}

	return nil, &UnsupportedValueError{Type: rv.Kind().String()}
}

// ToNative converts a Value into plain Go data: string, float64, bool, nil,
// map[string]any and []any. Opaque values are returned as Opaque{}.
func ToNative(v Value) any {
	switch val := v.(type) {
	case String:
		return string(val)
	case Number:
		return float64(val)
	case Bool:
		return bool(val)
	case Null:
		return nil
	case *Mapping:
		out := make(map[string]any, val.Len())
		for k, elem := range val.All() {
			out[k] = ToNative(elem)
		}

		return out
	case *Sequence:
		out := make([]any, 0, val.Len())
		for _, elem := range val.All() {
			out = append(out, ToNative(elem))
		}

		return out
	case Opaque:
		return val
	}

	return nil
}
