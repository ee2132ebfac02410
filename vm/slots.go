package vm

// ---------------------------------------------------------------------------
// Reflective slot access
// ---------------------------------------------------------------------------

// Slot identifies a reflectively accessible slot.
type Slot int

const (
	SlotWrapperValue Slot = iota + 1
)

var slotNames = map[string]Slot{
	"wrapperValue": SlotWrapperValue,
}

// String returns the slot's reflective name.
func (s Slot) String() string {
	for name, slot := range slotNames {
		if slot == s {
			return name
		}
	}
	return "<unknown slot>"
}

// ParseSlot resolves a slot name.
func ParseSlot(name string) (Slot, error) {
	if s, ok := slotNames[name]; ok {
		return s, nil
	}
	return 0, &InvalidSlotError{Slot: name}
}

// SlotAccessor is implemented by objects that support reflective slot
// get/set.
type SlotAccessor interface {
	Object
	AccessSlot(name string, value Object, set bool) (Object, error)
}

// AccessSlot gets or sets a named slot. The only slot of a wrapper is
// wrapperValue: get returns a fresh wrapper of the value, set copies the
// value out of an incoming wrapper of a compatible kind into w in place.
//
// Set mutates w. Callers that need immutability must work on a Copy.
// Setting the sentinel value into an ordinary wrapper is allowed and
// leaves a second instance holding it; Wrap and Copy still return the
// singleton for the sentinel.
func (w *Wrapper[T]) AccessSlot(name string, value Object, set bool) (Object, error) {
	slot, err := ParseSlot(name)
	if err != nil {
		return nil, err
	}
	switch slot {
	case SlotWrapperValue:
		if !set {
			return w.kind.Wrap(w.value), nil
		}
		in, ok := value.(*Wrapper[T])
		if !ok || in == nil || !in.PrimaryType().IsOrSpecializes(w.kind.spec.Tag) {
			return nil, &TypeMismatchError{Want: w.kind.spec.Tag.String(), Got: typeName(value)}
		}
		w.value = in.value
		return value, nil
	}
	return nil, &InvalidSlotError{Slot: name}
}

func typeName(obj Object) string {
	if isNilObject(obj) {
		return "NULL"
	}
	return obj.PrimaryType().String()
}
