package vm

// fixedTable returns a deterministic hash table.
func fixedTable() *HashTable {
	var t HashTable
	for i := range t {
		t[i] = i*7919 + 13
	}
	return &t
}

func newTestRuntime() *Runtime {
	return NewRuntime(Options{HashTable: fixedTable()})
}
