// Package vm implements the boxed-literal and dense-array layer of the
// boxlit object runtime.
//
// This package contains:
//   - Runtime: the injected process-wide state (type tags, hash table, print flags)
//   - Type tags and the is-or-specializes check
//   - Boxed scalar wrappers with canonicalized sentinels
//   - Structural equality and randomized hashing
//   - Reflective slot access and readable/display printing
//   - Dense fixed-rank arrays with flat addressing
package vm
