package vm

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Runtime: process-wide state, injected rather than ambient
// ---------------------------------------------------------------------------

// HashTableSize is the number of entries in the hash-byte randomization
// table, one per byte value.
const HashTableSize = 256

// HashTable maps a byte value to a random hash contribution. It is filled
// once when the runtime is created and is read-only afterwards.
type HashTable [HashTableSize]int

// NewHashTable fills a table from the given seed. A zero seed picks a
// random one.
func NewHashTable(seed uint64) *HashTable {
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var t HashTable
	for i := range t {
		t[i] = int(rng.Int32())
	}
	return &t
}

// At returns the table entry for byte b.
func (t *HashTable) At(b byte) int {
	return t[b]
}

// Options configures a new Runtime.
type Options struct {
	// HashSeed seeds the randomization table. Zero means random.
	HashSeed uint64
	// HashTable, when set, is used as-is and HashSeed is ignored.
	HashTable *HashTable
	// PrintReadably is the initial value of the print-readably flag.
	PrintReadably bool
	// CharacterPrinter renders characters for PrintObject. Defaults to
	// LispCharacterPrinter.
	CharacterPrinter CharacterPrinter
}

// Runtime bundles the state shared by every object of one object space:
// the type registry, the hash table, the print flags and the scalar kinds
// that own the sentinel singletons.
type Runtime struct {
	Types  *TypeRegistry
	Hashes *HashTable

	// Characters is the boxed character domain.
	Characters *ScalarKind[rune]

	charPrinter   CharacterPrinter
	printReadably atomic.Bool
}

// NewRuntime creates a runtime. All sentinel instances are allocated here,
// before the runtime is handed to any caller.
func NewRuntime(opts Options) *Runtime {
	rt := &Runtime{
		Types:       NewTypeRegistry(),
		Hashes:      opts.HashTable,
		charPrinter: opts.CharacterPrinter,
	}
	if rt.Hashes == nil {
		rt.Hashes = NewHashTable(opts.HashSeed)
	}
	if rt.charPrinter == nil {
		rt.charPrinter = LispCharacterPrinter{}
	}
	rt.printReadably.Store(opts.PrintReadably)
	rt.Characters = newCharacterKind(rt)
	return rt
}

var (
	defaultRuntime     *Runtime
	defaultRuntimeOnce sync.Once
)

// Default returns the process-wide runtime, creating it on first use with
// a random hash seed.
func Default() *Runtime {
	defaultRuntimeOnce.Do(func() {
		defaultRuntime = NewRuntime(Options{})
	})
	return defaultRuntime
}

// PrintReadably reports the current value of the print-readably flag.
func (rt *Runtime) PrintReadably() bool {
	return rt.printReadably.Load()
}

// SetPrintReadably toggles the print-readably flag.
func (rt *Runtime) SetPrintReadably(on bool) {
	rt.printReadably.Store(on)
}

// PrintContext snapshots the printing state for one print call.
func (rt *Runtime) PrintContext() *PrintContext {
	return &PrintContext{
		Readably:   rt.PrintReadably(),
		Characters: rt.charPrinter,
	}
}

// Tag returns a built-in type tag by name.
func (rt *Runtime) Tag(name string) *TypeTag {
	return rt.Types.MustLookup(name)
}
