// Package profctl implements the backend engine for a GPU/CPU profiling
// trace visualizer: a Controller owns a Timeline of Tracks, a Topology of
// machine/process nodes, and a string intern table, and exposes every
// object in that graph through one uniform Handle property interface so a
// UI layer never needs to switch on concrete Go types.
//
// Long-running work -- loading a trace, fetching a viewport's worth of a
// Track's data, running a table query -- is driven through Future, a
// one-shot handle with progress reporting and cooperative cancellation.
// Graph and Table results are level-of-detail coalesced so a viewport
// fetch returns a bounded number of entries regardless of how much raw
// data backs it.
package profctl
