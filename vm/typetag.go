package vm

import (
	"sync"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Type tags: stable runtime identifiers for concrete object kinds
// ---------------------------------------------------------------------------

// Built-in type tag names.
const (
	TagObject           = "OBJECT"
	TagLiteralWrapper   = "LITERAL-WRAPPER"
	TagCharacterWrapper = "CHARACTER-WRAPPER"
	TagDimensionalArray = "ABSTRACT-DIMENSIONAL-ARRAY"
	Tag1DFloatArray     = "1D-FLOAT-ARRAY"
	Tag2DFloatArray     = "2D-FLOAT-ARRAY"
)

// TypeTag identifies the concrete kind of an object. Tags form a single
// inheritance chain through Super.
type TypeTag struct {
	ID    int
	Name  string
	Super *TypeTag
}

func (t *TypeTag) String() string {
	if t == nil {
		return "<no type>"
	}
	return t.Name
}

// IsOrSpecializes reports whether t is target or inherits from it.
func (t *TypeTag) IsOrSpecializes(target *TypeTag) bool {
	if target == nil {
		return false
	}
	for c := t; c != nil; c = c.Super {
		if c == target {
			return true
		}
	}
	return false
}

// TypeRegistry interns type tags by name.
type TypeRegistry struct {
	mu     sync.RWMutex
	byName map[string]*TypeTag
	nextID atomic.Int32
}

// NewTypeRegistry creates a registry pre-populated with the built-in tags.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{byName: make(map[string]*TypeTag)}
	object := r.Intern(TagObject, nil)
	literal := r.Intern(TagLiteralWrapper, object)
	r.Intern(TagCharacterWrapper, literal)
	array := r.Intern(TagDimensionalArray, object)
	r.Intern(Tag1DFloatArray, array)
	r.Intern(Tag2DFloatArray, array)
	return r
}

// Intern returns the tag registered under name, creating it with the given
// super tag if it does not exist yet. Interning is idempotent: an existing
// tag keeps its original super.
func (r *TypeRegistry) Intern(name string, super *TypeTag) *TypeTag {
	// Fast path: already registered
	r.mu.RLock()
	t, ok := r.byName[name]
	r.mu.RUnlock()
	if ok {
		return t
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.byName[name]; ok {
		return t
	}
	t = &TypeTag{ID: int(r.nextID.Add(1)), Name: name, Super: super}
	r.byName[name] = t
	return t
}

// Lookup returns the tag registered under name.
func (r *TypeRegistry) Lookup(name string) (*TypeTag, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// MustLookup is like Lookup but panics on unknown names. Used for the
// built-in tags, which always exist.
func (r *TypeRegistry) MustLookup(name string) *TypeTag {
	t, ok := r.Lookup(name)
	if !ok {
		panic("vm: unknown type tag " + name)
	}
	return t
}

// Len returns the number of registered tags.
func (r *TypeRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// TypeTagOf returns the primary type of obj, or nil for a nil object.
func TypeTagOf(obj Object) *TypeTag {
	if isNilObject(obj) {
		return nil
	}
	return obj.PrimaryType()
}
