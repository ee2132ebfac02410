package vm

import (
	"errors"
	"io"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Canonicalizer tests
// ---------------------------------------------------------------------------

var sampleCharacters = []rune{'a', 'Z', '0', ' ', '\'', '\\', '\n', '\t', '\r', '\f', '\b', 'é', 0x7f}

func TestWrapNonNullIsFresh(t *testing.T) {
	rt := newTestRuntime()
	for _, ch := range sampleCharacters {
		a, b := rt.WrapCharacter(ch), rt.WrapCharacter(ch)
		if a == b {
			t.Errorf("WrapCharacter(%q) returned the same instance twice", ch)
		}
		if !a.Equal(b) {
			t.Errorf("WrapCharacter(%q) wrappers should be structurally equal", ch)
		}
	}
}

func TestWrapNullIsSingleton(t *testing.T) {
	rt := newTestRuntime()
	a := rt.WrapCharacter(NullCharacter)
	b := rt.WrapCharacter(NullCharacter)
	if a != b {
		t.Error("WrapCharacter(NullCharacter) should always return the same instance")
	}
	if a != rt.Characters.NullWrapper() {
		t.Error("null wrapper should be the kind's singleton")
	}
	if !a.IsNull() {
		t.Error("IsNull should be true for the sentinel")
	}
}

func TestUnwrap(t *testing.T) {
	rt := newTestRuntime()
	for _, ch := range append(sampleCharacters, NullCharacter) {
		if got := rt.UnwrapCharacter(rt.WrapCharacter(ch)); got != ch {
			t.Errorf("UnwrapCharacter(WrapCharacter(%q)) = %q", ch, got)
		}
	}
	if got := rt.UnwrapCharacter(nil); got != NullCharacter {
		t.Errorf("UnwrapCharacter(nil) = %q, want NullCharacter", got)
	}
}

func TestCopy(t *testing.T) {
	rt := newTestRuntime()
	null := rt.WrapCharacter(NullCharacter)
	if null.Copy() != null {
		t.Error("copying the sentinel should return the sentinel")
	}

	a := rt.WrapCharacter('q')
	c := a.Copy()
	if c == a {
		t.Error("copy of an ordinary wrapper should be a distinct instance")
	}
	if !c.Equal(a) {
		t.Error("copy should be structurally equal to the original")
	}
}

// ---------------------------------------------------------------------------
// Equality and hash tests
// ---------------------------------------------------------------------------

func TestEqualRejects(t *testing.T) {
	rt := newTestRuntime()
	a := rt.WrapCharacter('a')

	if a.Equal(nil) {
		t.Error("Equal(nil) should be false")
	}
	var typedNil *CharacterWrapper
	if a.Equal(typedNil) {
		t.Error("Equal(typed nil) should be false")
	}
	if a.Equal(rt.WrapCharacter('b')) {
		t.Error("'a' should not equal 'b'")
	}
	arr, _ := rt.NewFloatArray1D(1)
	if a.Equal(arr) {
		t.Error("a character should not equal an array")
	}
}

func TestEqualAcrossKindsWithSameRepresentation(t *testing.T) {
	rt := newTestRuntime()
	other := NewScalarKind(rt, KindSpec[rune]{
		Tag:       rt.Types.Intern("CODE-POINT-WRAPPER", rt.Tag(TagLiteralWrapper)),
		NullName:  "NULL-CODE-POINT",
		HashMagic: 1,
		ByteIndex: func(r rune) byte { return byte(r) },
	})
	if rt.WrapCharacter('a').Equal(other.Wrap('a')) {
		t.Error("a wrapper whose tag does not specialize CHARACTER-WRAPPER should not be equal")
	}
}

func TestEqualAcceptsSpecializedTag(t *testing.T) {
	rt := newTestRuntime()
	sub := rt.Types.Intern("SHOUTING-CHARACTER-WRAPPER", rt.Tag(TagCharacterWrapper))
	kind := NewScalarKind(rt, KindSpec[rune]{
		Tag:       sub,
		NullName:  NullCharacterName,
		HashMagic: CharacterHashMagic,
		ByteIndex: func(r rune) byte { return byte(r) },
	})
	if !rt.WrapCharacter('x').Equal(kind.Wrap('x')) {
		t.Error("a wrapper of a specializing tag with the same value should be equal")
	}
}

func TestHashConsistentWithEqual(t *testing.T) {
	rt := newTestRuntime()
	for _, ch := range append(sampleCharacters, NullCharacter) {
		a, b := rt.WrapCharacter(ch), rt.WrapCharacter(ch)
		if a.Equal(b) && a.Hash() != b.Hash() {
			t.Errorf("equal wrappers of %q hash differently: %d vs %d", ch, a.Hash(), b.Hash())
		}
	}
}

func TestHashFormula(t *testing.T) {
	rt := newTestRuntime()
	table := fixedTable()
	got := rt.WrapCharacter('A').Hash()
	want := table['A'] ^ CharacterHashMagic
	if got != want {
		t.Errorf("Hash('A') = %d, want %d", got, want)
	}
}

func TestHashMagicSeparatesKinds(t *testing.T) {
	rt := newTestRuntime()
	bytes := NewScalarKind(rt, KindSpec[byte]{
		Tag:       rt.Types.Intern("BYTE-WRAPPER", rt.Tag(TagLiteralWrapper)),
		NullName:  "NULL-BYTE",
		HashMagic: 0x5a5a5a,
		ByteIndex: func(b byte) byte { return b },
	})
	if bytes.Wrap('A').Hash() == rt.WrapCharacter('A').Hash() {
		t.Error("kinds with distinct magic constants should hash the same byte differently")
	}
}

func TestSeededTablesAreDeterministic(t *testing.T) {
	a := NewHashTable(42)
	b := NewHashTable(42)
	if *a != *b {
		t.Error("tables built from the same seed should match")
	}
	c := NewHashTable(43)
	if *a == *c {
		t.Error("tables built from different seeds should differ")
	}
}

// ---------------------------------------------------------------------------
// Slot access tests
// ---------------------------------------------------------------------------

func TestAccessSlotGet(t *testing.T) {
	rt := newTestRuntime()
	self := rt.WrapCharacter('k')
	got, err := self.AccessSlot("wrapperValue", nil, false)
	if err != nil {
		t.Fatalf("AccessSlot get: %v", err)
	}
	if !self.Equal(got) {
		t.Errorf("AccessSlot get = %v, want a wrapper equal to %v", got, self)
	}
	if got == Object(self) {
		t.Error("AccessSlot get should return a fresh wrapper")
	}
}

func TestAccessSlotSet(t *testing.T) {
	rt := newTestRuntime()
	self := rt.WrapCharacter('k')
	if _, err := self.AccessSlot("wrapperValue", rt.WrapCharacter('m'), true); err != nil {
		t.Fatalf("AccessSlot set: %v", err)
	}
	if self.Value() != 'm' {
		t.Errorf("after set, Value() = %q, want 'm'", self.Value())
	}
}

func TestAccessSlotInvalidName(t *testing.T) {
	rt := newTestRuntime()
	self := rt.WrapCharacter('k')
	_, err := self.AccessSlot("bogus", nil, false)
	var slotErr *InvalidSlotError
	if !errors.As(err, &slotErr) {
		t.Fatalf("AccessSlot(bogus) error = %v, want *InvalidSlotError", err)
	}
	if slotErr.Slot != "bogus" {
		t.Errorf("InvalidSlotError.Slot = %q, want %q", slotErr.Slot, "bogus")
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("error message %q should name the slot", err.Error())
	}
}

func TestAccessSlotSetTypeMismatch(t *testing.T) {
	rt := newTestRuntime()
	self := rt.WrapCharacter('k')
	arr, _ := rt.NewFloatArray1D(2)

	for _, in := range []Object{nil, arr} {
		_, err := self.AccessSlot("wrapperValue", in, true)
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Errorf("AccessSlot set with %v: error = %v, want *TypeMismatchError", in, err)
		}
		if self.Value() != 'k' {
			t.Errorf("failed set should not mutate; Value() = %q", self.Value())
		}
	}
}

func TestParseSlot(t *testing.T) {
	s, err := ParseSlot("wrapperValue")
	if err != nil || s != SlotWrapperValue {
		t.Errorf("ParseSlot(wrapperValue) = %v, %v", s, err)
	}
	if s.String() != "wrapperValue" {
		t.Errorf("SlotWrapperValue.String() = %q", s.String())
	}
	if _, err := ParseSlot("WrapperValue"); err == nil {
		t.Error("slot names are case sensitive")
	}
}

// ---------------------------------------------------------------------------
// Printing tests
// ---------------------------------------------------------------------------

func TestPrintObject(t *testing.T) {
	rt := newTestRuntime()
	tests := []struct {
		ch       rune
		readably bool
		want     string
	}{
		{NullCharacter, true, "NULL-CHARACTER"},
		{NullCharacter, false, "|L|NULL-CHARACTER"},
		{'a', true, `#\a`},
		{'a', false, "|L|a"},
		{' ', true, `#\Space`},
		{'\n', true, `#\Newline`},
		{'\t', false, "|L|\t"},
	}

	for _, tt := range tests {
		rt.SetPrintReadably(tt.readably)
		var sb strings.Builder
		if err := rt.WrapCharacter(tt.ch).PrintObject(&sb, rt.PrintContext()); err != nil {
			t.Fatalf("PrintObject(%q): %v", tt.ch, err)
		}
		if sb.String() != tt.want {
			t.Errorf("PrintObject(%q, readably=%v) = %q, want %q", tt.ch, tt.readably, sb.String(), tt.want)
		}
	}
}

type upperPrinter struct{}

func (upperPrinter) PrintCharacter(w io.Writer, ch rune, _ bool) error {
	_, err := io.WriteString(w, strings.ToUpper(string(ch)))
	return err
}

func TestPrintObjectUsesInjectedCharacterPrinter(t *testing.T) {
	rt := NewRuntime(Options{HashTable: fixedTable(), PrintReadably: true, CharacterPrinter: upperPrinter{}})
	var sb strings.Builder
	if err := rt.WrapCharacter('q').PrintObject(&sb, rt.PrintContext()); err != nil {
		t.Fatal(err)
	}
	if sb.String() != "Q" {
		t.Errorf("PrintObject = %q, want %q", sb.String(), "Q")
	}
}

func TestAccessSlotSetNullKeepsSingleton(t *testing.T) {
	rt := newTestRuntime()
	self := rt.WrapCharacter('k')
	if _, err := self.AccessSlot("wrapperValue", rt.WrapCharacter(NullCharacter), true); err != nil {
		t.Fatal(err)
	}
	if !self.IsNull() {
		t.Error("set should store the sentinel value in place")
	}
	if self == rt.Characters.NullWrapper() {
		t.Fatal("set should not replace the receiver's identity")
	}
	if self.Copy() != rt.Characters.NullWrapper() {
		t.Error("copying a wrapper holding the sentinel should return the singleton")
	}
	if rt.WrapCharacter(NullCharacter) != rt.Characters.NullWrapper() {
		t.Error("Wrap of the sentinel should still return the singleton")
	}
}
