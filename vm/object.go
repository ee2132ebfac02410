package vm

import (
	"io"
	"reflect"
)

// Object is anything the runtime can dispatch on: every concrete kind
// declares a stable primary type.
type Object interface {
	PrimaryType() *TypeTag
}

// Equaler is implemented by objects with structural (value) equality.
type Equaler interface {
	Object
	Equal(other Object) bool
}

// Hasher is implemented by objects whose hash is consistent with Equal.
type Hasher interface {
	Equaler
	Hash() int
}

// Printer is implemented by objects that can print themselves in either
// readable (reader round-trippable) or display form.
type Printer interface {
	Object
	PrintObject(w io.Writer, p *PrintContext) error
}

// ObjectEqual compares two objects structurally when x supports it, and by
// identity otherwise.
func ObjectEqual(x, y Object) bool {
	if isNilObject(x) {
		return isNilObject(y)
	}
	if e, ok := x.(Equaler); ok {
		return e.Equal(y)
	}
	return x == y
}

// isNilObject catches both a nil interface and a typed nil pointer.
func isNilObject(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
