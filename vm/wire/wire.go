// Package wire serializes boxed literals and dense arrays to canonical
// CBOR. Decoding goes back through the runtime's constructors, so a
// decoded null character is the runtime's sentinel singleton.
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/boxlit/vm"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Record is the encoded form of one object.
type Record struct {
	Type     string    `cbor:"1,keyasint"`
	Char     *rune     `cbor:"2,keyasint,omitempty"`
	Dims     []int     `cbor:"3,keyasint,omitempty"`
	Elements []float64 `cbor:"4,keyasint,omitempty"`
}

// UnsupportedTypeError is returned for objects or records the codec does
// not know.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("wire: unsupported type %s", e.Type)
}

// ToRecord converts obj to its record form.
func ToRecord(obj vm.Object) (*Record, error) {
	switch o := obj.(type) {
	case *vm.CharacterWrapper:
		if o == nil {
			break
		}
		ch := o.Value()
		return &Record{Type: o.PrimaryType().Name, Char: &ch}, nil
	case *vm.Array1D[float64]:
		if o == nil {
			break
		}
		return &Record{Type: o.PrimaryType().Name, Dims: o.Dims(), Elements: o.Elements()}, nil
	case *vm.Array2D[float64]:
		if o == nil {
			break
		}
		return &Record{Type: o.PrimaryType().Name, Dims: o.Dims(), Elements: o.Elements()}, nil
	}
	if obj == nil || vm.TypeTagOf(obj) == nil {
		return nil, &UnsupportedTypeError{Type: "NULL"}
	}
	return nil, &UnsupportedTypeError{Type: obj.PrimaryType().Name}
}

// FromRecord rebuilds an object in rt.
func FromRecord(rt *vm.Runtime, r *Record) (vm.Object, error) {
	switch r.Type {
	case vm.TagCharacterWrapper:
		if r.Char == nil {
			return nil, fmt.Errorf("wire: %s record has no character", r.Type)
		}
		return rt.WrapCharacter(*r.Char), nil
	case vm.Tag1DFloatArray:
		if len(r.Dims) != 1 {
			return nil, fmt.Errorf("wire: %s record has %d dimensions, want 1", r.Type, len(r.Dims))
		}
		a, err := rt.NewFloatArray1D(r.Dims[0])
		if err != nil {
			return nil, fmt.Errorf("wire: %w", err)
		}
		if err := fillElements(a.Elements(), r); err != nil {
			return nil, err
		}
		return a, nil
	case vm.Tag2DFloatArray:
		if len(r.Dims) != 2 {
			return nil, fmt.Errorf("wire: %s record has %d dimensions, want 2", r.Type, len(r.Dims))
		}
		a, err := rt.NewFloatArray2D(r.Dims[0], r.Dims[1])
		if err != nil {
			return nil, fmt.Errorf("wire: %w", err)
		}
		if err := fillElements(a.Elements(), r); err != nil {
			return nil, err
		}
		return a, nil
	}
	return nil, &UnsupportedTypeError{Type: r.Type}
}

func fillElements(dst []float64, r *Record) error {
	if len(r.Elements) != len(dst) {
		return fmt.Errorf("wire: %s record has %d elements, want %d", r.Type, len(r.Elements), len(dst))
	}
	copy(dst, r.Elements)
	return nil
}

// Marshal serializes obj to CBOR bytes.
func Marshal(obj vm.Object) ([]byte, error) {
	r, err := ToRecord(obj)
	if err != nil {
		return nil, err
	}
	return cborEncMode.Marshal(r)
}

// Unmarshal deserializes an object from CBOR bytes into rt.
func Unmarshal(rt *vm.Runtime, data []byte) (vm.Object, error) {
	var r Record
	if err := cbor.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("wire: unmarshal record: %w", err)
	}
	return FromRecord(rt, &r)
}
