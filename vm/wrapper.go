package vm

import (
	"fmt"
	"io"
)

// ---------------------------------------------------------------------------
// Boxed scalars: immutable-looking wrappers around primitive values
// ---------------------------------------------------------------------------

// displayPrefix marks a literal wrapper in display (non-readable) output.
const displayPrefix = "|L|"

// KindSpec describes a primitive domain to box.
type KindSpec[T comparable] struct {
	// Tag is the primary type of every wrapper of this kind.
	Tag *TypeTag
	// Null is the designated sentinel value of the domain.
	Null T
	// NullName is the symbol printed for the sentinel.
	NullName string
	// HashMagic is XORed into every hash so that kinds sharing a byte
	// value still hash differently.
	HashMagic int
	// ByteIndex selects the hash table entry for a value.
	ByteIndex func(T) byte
	// PrintValue renders a non-sentinel value.
	PrintValue func(w io.Writer, v T, p *PrintContext) error
}

// ScalarKind is a boxed primitive domain. It owns the domain's sentinel
// wrapper, which is allocated once with the kind and never reclaimed.
type ScalarKind[T comparable] struct {
	spec   KindSpec[T]
	hashes *HashTable
	null   *Wrapper[T]
}

// NewScalarKind registers a boxed domain with a runtime.
func NewScalarKind[T comparable](rt *Runtime, spec KindSpec[T]) *ScalarKind[T] {
	k := &ScalarKind[T]{spec: spec, hashes: rt.Hashes}
	k.null = &Wrapper[T]{kind: k, value: spec.Null}
	return k
}

// Tag returns the primary type of the kind's wrappers.
func (k *ScalarKind[T]) Tag() *TypeTag { return k.spec.Tag }

// Null returns the sentinel value.
func (k *ScalarKind[T]) Null() T { return k.spec.Null }

// NullWrapper returns the sentinel singleton.
func (k *ScalarKind[T]) NullWrapper() *Wrapper[T] { return k.null }

// IsNull reports whether v is the sentinel value.
func (k *ScalarKind[T]) IsNull(v T) bool { return v == k.spec.Null }

// Wrap returns a wrapper holding v. The sentinel always maps to the same
// instance; every other value gets a fresh one.
func (k *ScalarKind[T]) Wrap(v T) *Wrapper[T] {
	if v == k.spec.Null {
		return k.null
	}
	return &Wrapper[T]{kind: k, value: v}
}

// Unwrap returns the wrapped value, or the sentinel for a nil wrapper.
func (k *ScalarKind[T]) Unwrap(w *Wrapper[T]) T {
	if w == nil {
		return k.spec.Null
	}
	return w.value
}

var (
	_ Hasher       = (*CharacterWrapper)(nil)
	_ Printer      = (*CharacterWrapper)(nil)
	_ SlotAccessor = (*CharacterWrapper)(nil)
)

// Wrapper is a boxed scalar of one ScalarKind.
type Wrapper[T comparable] struct {
	kind  *ScalarKind[T]
	value T
}

// Value returns the wrapped value.
func (w *Wrapper[T]) Value() T { return w.value }

// Kind returns the scalar kind w belongs to.
func (w *Wrapper[T]) Kind() *ScalarKind[T] { return w.kind }

// IsNull reports whether w holds the sentinel value.
func (w *Wrapper[T]) IsNull() bool { return w.kind.IsNull(w.value) }

// PrimaryType implements Object.
func (w *Wrapper[T]) PrimaryType() *TypeTag { return w.kind.spec.Tag }

// Copy re-wraps the value, so a copy of the sentinel is the sentinel and a
// copy of anything else is a new, unaliased wrapper.
func (w *Wrapper[T]) Copy() *Wrapper[T] {
	return w.kind.Wrap(w.value)
}

// Equal reports structural equality: other must be a wrapper whose type is
// or specializes w's type and whose value equals w's value.
func (w *Wrapper[T]) Equal(other Object) bool {
	if isNilObject(other) {
		return false
	}
	if !other.PrimaryType().IsOrSpecializes(w.kind.spec.Tag) {
		return false
	}
	o, ok := other.(*Wrapper[T])
	return ok && o.value == w.value
}

// Hash returns table[byteIndex(value)] XOR the kind's magic constant.
func (w *Wrapper[T]) Hash() int {
	return w.kind.hashes.At(w.kind.spec.ByteIndex(w.value)) ^ w.kind.spec.HashMagic
}

// PrintObject writes the sentinel as its null symbol, and any other value
// through the kind's value printer. Display mode prefixes the literal
// marker.
func (w *Wrapper[T]) PrintObject(out io.Writer, p *PrintContext) error {
	if w.IsNull() {
		if p.Readably {
			_, err := io.WriteString(out, w.kind.spec.NullName)
			return err
		}
		_, err := io.WriteString(out, displayPrefix+w.kind.spec.NullName)
		return err
	}
	if !p.Readably {
		if _, err := io.WriteString(out, displayPrefix); err != nil {
			return err
		}
	}
	return w.kind.spec.PrintValue(out, w.value, p)
}

func (w *Wrapper[T]) String() string {
	return fmt.Sprintf("%s(%v)", w.kind.spec.Tag, w.value)
}
