package debugui

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/AllenDang/cimgui-go/imgui"
)

// Field describes one exported struct field.
type Field struct {
	Name    string
	Index   int
	Pointer bool
	Kind    reflect.Kind
}

type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]Field
}

var fieldsByType = &fieldCache{fields: make(map[reflect.Type][]Field)}

// Fields lists the exported fields of a struct type, cached per type.
// Non-struct types have none.
func Fields(t reflect.Type) []Field {
	fieldsByType.mu.RLock()
	cached, ok := fieldsByType.fields[t]
	fieldsByType.mu.RUnlock()
	if ok {
		return cached
	}

	var out []Field
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			ft := f.Type
			ptr := ft.Kind() == reflect.Pointer
			if ptr {
				ft = ft.Elem()
			}
			out = append(out, Field{Name: f.Name, Index: i, Pointer: ptr, Kind: ft.Kind()})
		}
	}

	fieldsByType.mu.Lock()
	fieldsByType.fields[t] = out
	fieldsByType.mu.Unlock()
	return out
}

// Describe formats a scalar for display; containers show their length.
func Describe(v reflect.Value) string {
	if !v.IsValid() {
		return "<invalid>"
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return "nil"
		}
		return Describe(v.Elem())
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", v.Len())
	case reflect.Func:
		if v.IsNil() {
			return "nil"
		}
		return "func"
	case reflect.Struct:
		if s, ok := stringer(v); ok {
			return s.String()
		}
		return fmt.Sprintf("{%d fields}", len(Fields(v.Type())))
	}
	if v.CanInterface() {
		return fmt.Sprintf("%v", v.Interface())
	}
	return v.Kind().String()
}

// Inspect draws a read-only tree of value's exported fields.
func Inspect(label string, value any) {
	v := reflect.Indirect(reflect.ValueOf(value))
	if !imgui.TreeNodeStr(label) {
		return
	}
	inspectFields(v)
	imgui.TreePop()
}

func inspectFields(v reflect.Value) {
	for _, f := range Fields(v.Type()) {
		fv := v.Field(f.Index)
		if f.Pointer && !fv.IsNil() {
			fv = fv.Elem()
		}
		if f.Kind == reflect.Struct && fv.Kind() == reflect.Struct {
			if _, ok := stringer(fv); !ok {
				if imgui.TreeNodeStr(f.Name) {
					inspectFields(fv)
					imgui.TreePop()
				}
				continue
			}
		}
		imgui.Text(fmt.Sprintf("%s: %s", f.Name, Describe(fv)))
	}
}

func stringer(v reflect.Value) (fmt.Stringer, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	s, ok := v.Interface().(fmt.Stringer)
	return s, ok
}
