package vm

import (
	"io"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Characters: the boxed character domain
// ---------------------------------------------------------------------------

// NullCharacter is the sentinel of the character domain.
const NullCharacter rune = 0

// CharacterHashMagic distinguishes character hashes from other kinds that
// share a byte value.
const CharacterHashMagic = 15119378

// NullCharacterName is the symbol printed for the sentinel character.
const NullCharacterName = "NULL-CHARACTER"

// CharacterWrapper is a boxed character.
type CharacterWrapper = Wrapper[rune]

func newCharacterKind(rt *Runtime) *ScalarKind[rune] {
	return NewScalarKind(rt, KindSpec[rune]{
		Tag:       rt.Tag(TagCharacterWrapper),
		Null:      NullCharacter,
		NullName:  NullCharacterName,
		HashMagic: CharacterHashMagic,
		// The table is indexed by the low byte of the code point.
		ByteIndex: func(ch rune) byte { return byte(ch) },
		PrintValue: func(w io.Writer, ch rune, p *PrintContext) error {
			return p.Characters.PrintCharacter(w, ch, p.Readably)
		},
	})
}

// WrapCharacter boxes ch.
func (rt *Runtime) WrapCharacter(ch rune) *CharacterWrapper {
	return rt.Characters.Wrap(ch)
}

// UnwrapCharacter returns the boxed character, or NullCharacter for nil.
func (rt *Runtime) UnwrapCharacter(w *CharacterWrapper) rune {
	return rt.Characters.Unwrap(w)
}

// PrintContext carries the printing state for one print call.
type PrintContext struct {
	Readably   bool
	Characters CharacterPrinter
}

// CharacterPrinter renders a single character, either in reader syntax
// (readably) or as itself.
type CharacterPrinter interface {
	PrintCharacter(w io.Writer, ch rune, readably bool) error
}

// characterNames are the named characters of the Lisp reader syntax.
var characterNames = map[rune]string{
	NullCharacter: "Null",
	' ':           "Space",
	'\n':          "Newline",
	'\t':          "Tab",
	'\r':          "Return",
	'\f':          "Page",
	'\b':          "Backspace",
	0x7f:          "Rubout",
}

// CharacterName returns the reader name of ch, if it has one.
func CharacterName(ch rune) (string, bool) {
	name, ok := characterNames[ch]
	return name, ok
}

// LispCharacterPrinter prints characters as #\x reader syntax when
// printing readably.
type LispCharacterPrinter struct{}

// PrintCharacter implements CharacterPrinter.
func (LispCharacterPrinter) PrintCharacter(w io.Writer, ch rune, readably bool) error {
	if !readably {
		_, err := io.WriteString(w, string(ch))
		return err
	}
	if name, ok := CharacterName(ch); ok {
		_, err := io.WriteString(w, `#\`+name)
		return err
	}
	if !utf8.ValidRune(ch) {
		ch = utf8.RuneError
	}
	_, err := io.WriteString(w, `#\`+string(ch))
	return err
}
