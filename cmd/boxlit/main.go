// boxlit CLI - wraps characters and emits them as literals for a target
// language.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tliron/commonlog"

	"github.com/chazu/boxlit/manifest"
	"github.com/chazu/boxlit/store"
	"github.com/chazu/boxlit/vm"
	"github.com/chazu/boxlit/vm/emit"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// namedCharacters are the argument spellings for characters that are
// awkward to pass on a command line.
var namedCharacters = map[string]rune{
	"null":      vm.NullCharacter,
	"space":     ' ',
	"newline":   '\n',
	"tab":       '\t',
	"return":    '\r',
	"page":      '\f',
	"backspace": '\b',
	"rubout":    0x7f,
	"quote":     '\'',
	"backslash": '\\',
}

// parseCharacter reads a single character, a character name, or U+XXXX.
func parseCharacter(arg string) (rune, error) {
	if ch, ok := namedCharacters[strings.ToLower(arg)]; ok {
		return ch, nil
	}
	if hex, ok := strings.CutPrefix(strings.ToUpper(arg), "U+"); ok && len(arg) > 2 {
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return 0, fmt.Errorf("invalid code point %q", arg)
		}
		return rune(n), nil
	}
	if utf8.RuneCountInString(arg) == 1 {
		ch, _ := utf8.DecodeRuneInString(arg)
		return ch, nil
	}
	return 0, fmt.Errorf("%q is not a single character", arg)
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("boxlit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	targetName := fs.String("target", "", "Target language: "+strings.Join(emit.Names(), ", ")+" (default from boxlit.toml, else java)")
	printMode := fs.Bool("print", false, "Print the object representation instead of a literal")
	readably := fs.Bool("readably", false, "Print readably (with -print)")
	showHash := fs.Bool("hash", false, "Append the structural hash")
	save := fs.Bool("save", false, "Save each character to the literal store and print its id")
	configDir := fs.String("config", ".", "Directory to search for boxlit.toml")
	verbose := fs.Int("v", -1, "Log verbosity (overrides boxlit.toml)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: boxlit [options] chars...\n\n")
		fmt.Fprintf(stderr, "Wraps each character and writes its literal for the target language.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nCharacters may be given literally, as U+XXXX, or by name:\n")
		fmt.Fprintf(stderr, "  null space newline tab return page backspace rubout quote backslash\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  boxlit -target cpp space       # '\\0'\n")
		fmt.Fprintf(stderr, "  boxlit -print -readably a      # #\\a\n")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	m, err := manifest.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	if m == nil {
		m = manifest.Default(*configDir)
	}

	verbosity := m.Log.Verbosity
	if *verbose >= 0 {
		verbosity = *verbose
	}
	commonlog.Configure(verbosity, nil)
	log := commonlog.GetLogger("boxlit")

	if *targetName != "" {
		m.Emit.Target = *targetName
	}
	target, err := m.Target()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts := m.RuntimeOptions()
	if *readably {
		opts.PrintReadably = true
	}
	rt := vm.NewRuntime(opts)
	log.Debugf("target %s, print-readably %v", target, rt.PrintReadably())

	var chars []*vm.CharacterWrapper
	for _, arg := range fs.Args() {
		ch, err := parseCharacter(arg)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		chars = append(chars, rt.WrapCharacter(ch))
	}

	var st *store.Store
	if *save {
		st, err = store.Open(context.Background(), m.StorePath(), rt)
		if err != nil {
			fmt.Fprintf(stderr, "Error opening store: %v\n", err)
			return 1
		}
		defer st.Close()
	}

	for _, c := range chars {
		var sb strings.Builder
		if *printMode {
			err = c.PrintObject(&sb, rt.PrintContext())
		} else {
			err = emit.Literal(&sb, c, target)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		if *showHash {
			fmt.Fprintf(&sb, "\t%d", c.Hash())
		}
		if st != nil {
			id, err := st.Put(context.Background(), c)
			if err != nil {
				fmt.Fprintf(stderr, "Error saving: %v\n", err)
				return 1
			}
			fmt.Fprintf(&sb, "\t%s", id)
		}
		fmt.Fprintln(stdout, sb.String())
	}
	return 0
}
