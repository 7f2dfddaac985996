// Package translation implements the pure data operations behind translation
// synchronization: the tree model for nested JSON translation files, flattening
// to dotted keys, key-set differencing and tree merging.
//
// # Tree Model
//
// A translation file is parsed into a Node, a tagged variant that is either an
// Object, a String scalar, or a Raw scalar holding any other JSON literal
// (numbers, booleans, null, arrays) as canonical compact JSON text.
//
// # Flattening
//
// Flatten walks a tree and joins object keys with ".":
//
//	{"home": {"title": "Hello"}}  ->  {"home.title": "Hello"}
//
// Arrays are not flattened per index. They are stored as their JSON text
// under the array's own key, which loses array structure on Unflatten.
//
// # Conflict Policy
//
// Diff only reports gaps: keys missing remotely or whose remote value is
// blank. A populated remote value is authoritative and never overwritten
// from local. Merge applies the same policy in the other direction: remote
// values win once populated, blank remote strings never erase local text,
// and local-only keys are preserved.
package translation
