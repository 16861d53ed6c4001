// Package remap provides a staged interval-remapping engine.
//
// A Pipeline is an ordered chain of stages. Each stage owns a Table of disjoint inclusive
// intervals, and every interval maps a run of source values onto a run of destination values
// by a constant offset. Values that no interval contains pass through a stage unchanged.
//
// Traverse resolves one value from an entry stage to a terminal stage. MinimumTerminalValue
// finds the smallest terminal value reachable from a set of input ranges. By default it pushes
// whole intervals through the tables, splitting them at mapping boundaries, so the cost depends
// on the number of boundaries rather than on the size of the ranges. A brute-force strategy
// that evaluates every value on a pool of workers is kept as a reference implementation.
//
// A Pipeline is immutable once built and can be shared by any number of goroutines.
package remap
