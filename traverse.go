package reactive

import "reflect"

// reader is implemented by the generic reactive values (Ref, Computed).
type reader interface {
	readAny() any
}

type visit struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// traverse reads everything reachable from value, so the active subscriber
// depends on all of it. seen holds the identities already visited and stops
// cycles.
func traverse(value any, seen map[any]struct{}) {
	switch v := value.(type) {
	case nil:
		return

	case *Object:
		if v == nil || marked(seen, v.target) {
			return
		}

		for _, key := range v.Keys() {
			traverse(v.Get(key), seen)
		}
		return

	case reader:
		if marked(seen, v) {
			return
		}

		traverse(v.readAny(), seen)
		return
	}

	traverseValue(reflect.ValueOf(value), seen)
}

func traverseValue(rv reflect.Value, seen map[any]struct{}) {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() || marked(seen, visit{typ: rv.Type(), ptr: rv.Pointer()}) {
			return
		}
		traverseField(rv.Elem(), seen)

	case reflect.Interface:
		if !rv.IsNil() {
			traverseField(rv.Elem(), seen)
		}

	case reflect.Map:
		if rv.IsNil() || marked(seen, visit{typ: rv.Type(), ptr: rv.Pointer()}) {
			return
		}

		iter := rv.MapRange()
		for iter.Next() {
			traverseField(iter.Value(), seen)
		}

	case reflect.Slice:
		if rv.IsNil() || marked(seen, visit{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}) {
			return
		}

		for i := range rv.Len() {
			traverseField(rv.Index(i), seen)
		}

	case reflect.Array:
		for i := range rv.Len() {
			traverseField(rv.Index(i), seen)
		}

	case reflect.Struct:
		for i := range rv.NumField() {
			traverseField(rv.Field(i), seen)
		}
	}
}

// traverseField goes back through traverse, so reactive values nested in
// plain containers are read through their API. Unexported fields are skipped.
func traverseField(rv reflect.Value, seen map[any]struct{}) {
	if !rv.CanInterface() {
		return
	}

	traverse(rv.Interface(), seen)
}

func marked(seen map[any]struct{}, id any) bool {
	if _, ok := seen[id]; ok {
		return true
	}

	seen[id] = struct{}{}
	return false
}
