package vm

import (
	"iter"
	"math"
	"slices"
)

// ---------------------------------------------------------------------------
// Dense arrays: fixed-rank, fixed-size buffers of primitive values
// ---------------------------------------------------------------------------
//
// Every array stores its elements in one contiguous buffer allocated at
// construction. The buffer never grows. Elements can be reached either by
// rank-specific indices or by a flat address, which lets iteration code
// walk the buffer without redoing index arithmetic on every step.

// DimensionalArray is the rank-independent view of a dense array.
type DimensionalArray interface {
	Object
	Rank() int
	Dims() []int
	Length() int
}

var (
	_ DimensionalArray = (*Array1D[float64])(nil)
	_ DimensionalArray = (*Array2D[float64])(nil)
	_ Equaler          = (*Array1D[float64])(nil)
)

func checkDim(dim int) error {
	if dim < 0 {
		return &InvalidDimensionError{Dim: dim}
	}
	return nil
}

func checkIndex(i, dim int) error {
	if i < 0 || i >= dim {
		return &IndexOutOfBoundsError{Index: i, Dim: dim}
	}
	return nil
}

// dense is the buffer shared by every rank.
type dense[T comparable] struct {
	tag      *TypeTag
	elements []T
}

// PrimaryType implements Object.
func (d *dense[T]) PrimaryType() *TypeTag { return d.tag }

// Length returns the total number of elements.
func (d *dense[T]) Length() int { return len(d.elements) }

// Elements returns the backing buffer. Writes through it are visible to
// the array.
func (d *dense[T]) Elements() []T { return d.elements }

// Fill sets every element to v.
func (d *dense[T]) Fill(v T) {
	for i := range d.elements {
		d.elements[i] = v
	}
}

// AtAddress returns the element at a flat address.
func (d *dense[T]) AtAddress(addr int) (T, error) {
	if err := checkIndex(addr, len(d.elements)); err != nil {
		var zero T
		return zero, err
	}
	return d.elements[addr], nil
}

// SetAtAddress stores v at a flat address and returns it.
func (d *dense[T]) SetAtAddress(addr int, v T) (T, error) {
	if err := checkIndex(addr, len(d.elements)); err != nil {
		var zero T
		return zero, err
	}
	d.elements[addr] = v
	return v, nil
}

// All iterates over (address, element) pairs in address order.
func (d *dense[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for addr, v := range d.elements {
			if !yield(addr, v) {
				return
			}
		}
	}
}

// Array1D is a rank-1 dense array.
type Array1D[T comparable] struct {
	dense[T]
	dim1 int
}

// NewArray1D allocates a zero-initialized array of dim1 elements.
func NewArray1D[T comparable](tag *TypeTag, dim1 int) (*Array1D[T], error) {
	if err := checkDim(dim1); err != nil {
		return nil, err
	}
	return &Array1D[T]{
		dense: dense[T]{tag: tag, elements: make([]T, dim1)},
		dim1:  dim1,
	}, nil
}

// NewFloatArray1D allocates a 1D-FLOAT-ARRAY.
func (rt *Runtime) NewFloatArray1D(dim1 int) (*Array1D[float64], error) {
	return NewArray1D[float64](rt.Tag(Tag1DFloatArray), dim1)
}

// Rank returns 1.
func (a *Array1D[T]) Rank() int { return 1 }

// Dims returns the declared dimension.
func (a *Array1D[T]) Dims() []int { return []int{a.dim1} }

// At returns the element at position i.
func (a *Array1D[T]) At(i int) (T, error) {
	if err := checkIndex(i, a.dim1); err != nil {
		var zero T
		return zero, err
	}
	return a.elements[i], nil
}

// Set stores v at position i and returns it.
func (a *Array1D[T]) Set(i int, v T) (T, error) {
	if err := checkIndex(i, a.dim1); err != nil {
		var zero T
		return zero, err
	}
	a.elements[i] = v
	return v, nil
}

// Address returns the flat address of position i, which for rank 1 is i.
func (a *Array1D[T]) Address(i int) (int, error) {
	if err := checkIndex(i, a.dim1); err != nil {
		return 0, err
	}
	return i, nil
}

// Equal reports whether other is an array of the same type, dimensions
// and elements.
func (a *Array1D[T]) Equal(other Object) bool {
	o, ok := other.(*Array1D[T])
	if !ok || o == nil {
		return false
	}
	return o.tag == a.tag && o.dim1 == a.dim1 && slices.Equal(o.elements, a.elements)
}

// Array2D is a rank-2 dense array stored in row-major order.
type Array2D[T comparable] struct {
	dense[T]
	dim1 int
	dim2 int
}

// NewArray2D allocates a zero-initialized dim1 x dim2 array.
func NewArray2D[T comparable](tag *TypeTag, dim1, dim2 int) (*Array2D[T], error) {
	if err := checkDim(dim1); err != nil {
		return nil, err
	}
	if err := checkDim(dim2); err != nil {
		return nil, err
	}
	// dim1*dim2 must fit in an int, or the buffer would be shorter than
	// the declared shape.
	if dim2 != 0 && dim1 > math.MaxInt/dim2 {
		return nil, &InvalidDimensionError{Dim: dim1}
	}
	return &Array2D[T]{
		dense: dense[T]{tag: tag, elements: make([]T, dim1*dim2)},
		dim1:  dim1,
		dim2:  dim2,
	}, nil
}

// NewFloatArray2D allocates a 2D-FLOAT-ARRAY.
func (rt *Runtime) NewFloatArray2D(dim1, dim2 int) (*Array2D[float64], error) {
	return NewArray2D[float64](rt.Tag(Tag2DFloatArray), dim1, dim2)
}

// Rank returns 2.
func (a *Array2D[T]) Rank() int { return 2 }

// Dims returns the declared dimensions.
func (a *Array2D[T]) Dims() []int { return []int{a.dim1, a.dim2} }

// Address returns the row-major flat address of (i, j).
func (a *Array2D[T]) Address(i, j int) (int, error) {
	if err := checkIndex(i, a.dim1); err != nil {
		return 0, err
	}
	if err := checkIndex(j, a.dim2); err != nil {
		return 0, err
	}
	return i*a.dim2 + j, nil
}

// At returns the element at (i, j).
func (a *Array2D[T]) At(i, j int) (T, error) {
	addr, err := a.Address(i, j)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.elements[addr], nil
}

// Set stores v at (i, j) and returns it.
func (a *Array2D[T]) Set(i, j int, v T) (T, error) {
	addr, err := a.Address(i, j)
	if err != nil {
		var zero T
		return zero, err
	}
	a.elements[addr] = v
	return v, nil
}

// Equal reports whether other is an array of the same type, dimensions
// and elements.
func (a *Array2D[T]) Equal(other Object) bool {
	o, ok := other.(*Array2D[T])
	if !ok || o == nil {
		return false
	}
	return o.tag == a.tag && o.dim1 == a.dim1 && o.dim2 == a.dim2 &&
		slices.Equal(o.elements, a.elements)
}
