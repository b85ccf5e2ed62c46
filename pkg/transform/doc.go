// Package transform defines the contract between the pipeline and the
// declarative trace transforms it can apply.
//
// A transform is declared on a trace as an entry of its "transforms" array:
//
//	{"type": "scatter", "x": [...], "transforms": [{"type": "groupby", "groups": [...]}]}
//
// Each transform type is provided by a [Module]. The pipeline resolves the
// entry's options with [Module.SupplyDefaults] and then calls
// [Module.Transform] with a [State] that describes where the entry came
// from. Modules are collected in a [Registry], keyed by type name.
//
// Modules must not mutate the traces they are given. Every trace they
// return is owned by the caller.
package transform
