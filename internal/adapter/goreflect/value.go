package goreflect

import (
	"reflect"
	"sort"

	"mint/internal/extract"
)

type namedValue struct {
	name    string
	members []extract.Member
}

func (n *namedValue) TypeName() string               { return n.name }
func (n *namedValue) NamedMembers() []extract.Member { return n.members }

type orderedValue struct {
	items []any
}

func (o *orderedValue) OrderedMembers() []any { return o.items }

// Value presents a Go value as a data-capability construct. Structs expose
// their exported fields in declaration order under the given registry name;
// pointer fields are optional; maps expose entries under sorted keys since
// Go maps carry no order; slices and arrays become ordered members; scalars
// pass through unchanged.
func Value(name string, v any) any {
	return wrap(name, reflect.ValueOf(v))
}

func wrap(name string, rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return wrap(name, rv.Elem())
	case reflect.Struct:
		t := rv.Type()
		if name == "" {
			name = t.Name()
		}
		n := &namedValue{name: name}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			child := ""
			if f.Type.Kind() == reflect.Struct ||
				(f.Type.Kind() == reflect.Pointer && f.Type.Elem().Kind() == reflect.Struct) {
				child = f.Type.Name()
				if child == "" && f.Type.Kind() == reflect.Pointer {
					child = f.Type.Elem().Name()
				}
			}
			n.members = append(n.members, extract.Member{
				Name:     f.Name,
				Value:    wrap(child, rv.Field(i)),
				Optional: f.Type.Kind() == reflect.Pointer,
			})
		}
		return n
	case reflect.Map:
		n := &namedValue{name: name}
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			if iter.Key().Kind() != reflect.String {
				// Non-string keyed maps have no named members; present the
				// values positionally instead.
				return wrapOrdered(rv)
			}
			keys = append(keys, iter.Key().String())
			byKey[iter.Key().String()] = iter.Value()
		}
		sort.Strings(keys)
		for _, k := range keys {
			n.members = append(n.members, extract.Member{Name: k, Value: wrap("", byKey[k])})
		}
		return n
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 && rv.Kind() == reflect.Slice {
			return rv.Bytes()
		}
		return wrapOrdered(rv)
	default:
		return rv.Interface()
	}
}

func wrapOrdered(rv reflect.Value) any {
	o := &orderedValue{items: make([]any, 0, rv.Len())}
	if rv.Kind() == reflect.Map {
		iter := rv.MapRange()
		for iter.Next() {
			o.items = append(o.items, wrap("", iter.Value()))
		}
		return o
	}
	for i := 0; i < rv.Len(); i++ {
		o.items = append(o.items, wrap("", rv.Index(i)))
	}
	return o
}
