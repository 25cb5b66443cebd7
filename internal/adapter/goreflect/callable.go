// Package goreflect adapts Go constructs to the extraction capability
// contracts. It is the only package in the module that touches host-runtime
// reflection; the core consumes its normalized view and nothing else.
package goreflect

import (
	"fmt"
	"reflect"
	"strconv"

	"mint/internal/extract"
	"mint/internal/mint"
)

type fnSource struct {
	name   string
	params []extract.ParamSpec
	ret    string
	hasRet bool
}

// Func presents a Go function as a callable source. Go reflection exposes
// no parameter names, so slots are named arg0..argN; a variadic final
// parameter maps to the variadic-positional kind.
func Func(name string, fn any) (extract.CallableSource, error) {
	t := reflect.TypeOf(fn)
	if t == nil || t.Kind() != reflect.Func {
		return nil, fmt.Errorf("goreflect: %T is not a function", fn)
	}
	src := &fnSource{name: name}
	for i := 0; i < t.NumIn(); i++ {
		kind := mint.ParamPositional
		in := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			kind = mint.ParamVariadicPositional
			in = in.Elem()
		}
		src.params = append(src.params, extract.ParamSpec{
			Name:         "arg" + strconv.Itoa(i),
			DeclaredType: spelling(in),
			Kind:         kind,
		})
	}
	// The first non-error result is the declared return; a trailing error
	// is a Go calling convention, not part of the described interface.
	for i := 0; i < t.NumOut(); i++ {
		if t.Out(i) == reflect.TypeOf((*error)(nil)).Elem() {
			continue
		}
		src.ret = spelling(t.Out(i))
		src.hasRet = true
		break
	}
	return src, nil
}

func (s *fnSource) CallableName() string            { return s.name }
func (s *fnSource) Parameters() []extract.ParamSpec { return s.params }
func (s *fnSource) Doc() string                     { return "" }
func (s *fnSource) ReturnType() (string, bool)      { return s.ret, s.hasRet }

// spelling renders a Go type in the lexicon's canonical grammar.
func spelling(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return "bytes"
		}
		return "list<" + spelling(t.Elem()) + ">"
	case reflect.Map:
		return "map<" + spelling(t.Key()) + "," + spelling(t.Elem()) + ">"
	case reflect.Struct:
		if t.Name() != "" {
			return "struct<" + t.Name() + ">"
		}
		return "struct"
	case reflect.Func:
		return "callable"
	case reflect.Interface:
		return "any"
	case reflect.Pointer:
		return spelling(t.Elem())
	default:
		return "unknown"
	}
}
