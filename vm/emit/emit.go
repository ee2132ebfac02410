// Package emit renders boxed literals as source text for a target
// language.
//
// Each target is a data table: an escape map from character to its full
// literal spelling, an optional spelling for the null character, and a
// renderer for everything else. Adding a target means adding a table.
package emit

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/chazu/boxlit/vm"
)

// Target describes how one host language spells character literals.
type Target struct {
	Name    string
	Aliases []string

	// Escapes maps a character to its complete literal text.
	Escapes map[rune]string
	// Null spells vm.NullCharacter when it is not in Escapes. Empty means
	// the null character goes through Plain like any other.
	Null string
	// Plain renders a character with no special spelling.
	Plain func(ch rune) string
}

// Character returns the literal text for ch.
func (t *Target) Character(ch rune) string {
	if s, ok := t.Escapes[ch]; ok {
		return s
	}
	if ch == vm.NullCharacter && t.Null != "" {
		return t.Null
	}
	return t.Plain(ch)
}

func (t *Target) String() string { return t.Name }

// UnknownTargetError is returned by Lookup for an unregistered name.
type UnknownTargetError struct {
	Name string
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("emit: unknown target language %q (have %s)", e.Name, strings.Join(Names(), ", "))
}

// UnsupportedLiteralError is returned for objects that have no literal
// form.
type UnsupportedLiteralError struct {
	Type string
}

func (e *UnsupportedLiteralError) Error() string {
	return fmt.Sprintf("emit: no literal form for %s", e.Type)
}

// ---------------------------------------------------------------------------
// Target registry
// ---------------------------------------------------------------------------

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Target)
)

// Register makes t available to Lookup under its name and aliases. A
// target without a Plain renderer quotes characters verbatim.
func Register(t *Target) {
	if t.Plain == nil {
		t.Plain = quoted
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[t.Name] = t
	for _, a := range t.Aliases {
		registry[a] = t
	}
}

// Lookup resolves a target by name or alias.
func Lookup(name string) (*Target, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t, nil
	}
	return nil, &UnknownTargetError{Name: name}
}

// Names returns the registered target names, without aliases.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	var names []string
	for key, t := range registry {
		if key == t.Name {
			names = append(names, key)
		}
	}
	slices.Sort(names)
	return names
}

func init() {
	Register(Java)
	Register(Cpp)
	Register(Lisp)
	Register(Go)
}

// ---------------------------------------------------------------------------
// Emission
// ---------------------------------------------------------------------------

// Literal writes the literal text of obj for target t to w.
func Literal(w io.Writer, obj vm.Object, t *Target) error {
	switch lit := obj.(type) {
	case *vm.CharacterWrapper:
		if lit == nil {
			return &UnsupportedLiteralError{Type: "NULL"}
		}
		_, err := io.WriteString(w, t.Character(lit.Value()))
		return err
	}
	if tag := vm.TypeTagOf(obj); tag != nil {
		return &UnsupportedLiteralError{Type: tag.Name}
	}
	return &UnsupportedLiteralError{Type: "NULL"}
}

// String returns the literal text of obj for target t.
func String(obj vm.Object, t *Target) (string, error) {
	var sb strings.Builder
	if err := Literal(&sb, obj, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ---------------------------------------------------------------------------
// Shared table pieces
// ---------------------------------------------------------------------------

// quotedEscapes are the backslash escapes common to C-family languages.
var quotedEscapes = map[rune]string{
	'\'': `'\''`,
	'\\': `'\\'`,
	'\n': `'\n'`,
	'\b': `'\b'`,
	'\t': `'\t'`,
	'\r': `'\r'`,
	'\f': `'\f'`,
}

func quoted(ch rune) string {
	return "'" + string(ch) + "'"
}

func withEscapes(base map[rune]string, extra map[rune]string) map[rune]string {
	m := maps.Clone(base)
	maps.Copy(m, extra)
	return m
}
