package emit

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/chazu/boxlit/vm"
)

// Java spells characters as Java char literals. The null character is not
// special-cased and is written verbatim between quotes.
//
// Java and Cpp write every unescaped character verbatim, so they produce
// valid literals only for the 8-bit character set of the runtime's
// generated code. Code points above U+00FF are not rejected.
var Java = &Target{
	Name:    "java",
	Escapes: quotedEscapes,
	Plain:   quoted,
}

// Cpp spells characters as C/C++ char literals. Space and the null
// character both map to '\0', the placeholder encoding the C++ runtime
// uses for them.
var Cpp = &Target{
	Name:    "cpp",
	Aliases: []string{"c", "c++"},
	Escapes: withEscapes(quotedEscapes, map[rune]string{
		' ': `'\0'`,
	}),
	Null:  `'\0'`,
	Plain: quoted,
}

// Lisp spells characters in Common Lisp reader syntax.
var Lisp = &Target{
	Name:    "lisp",
	Aliases: []string{"common-lisp", "cl"},
	Escapes: map[rune]string{},
	Plain: func(ch rune) string {
		if name, ok := vm.CharacterName(ch); ok {
			return `#\` + name
		}
		return `#\` + string(ch)
	},
}

// Go spells characters as Go rune literals.
var Go = &Target{
	Name:    "go",
	Aliases: []string{"golang"},
	Escapes: map[rune]string{},
	Plain: func(ch rune) string {
		return fmt.Sprintf("%#v", jen.LitRune(ch))
	},
}
