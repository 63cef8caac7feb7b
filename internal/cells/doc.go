// Package cells owns the hit-level data model of a detector module.
//
// Responsibilities: the Cell record and its orderings, the per-module
// header (Module), and the module-paired Container that the clustering
// stages consume.
// Key types: Cell, Module, Container.
//
// Clustering requires every module's cells in column-major order
// (ascending Channel1, then Channel0). SortColumnMajor establishes that
// order and CheckColumnMajor verifies it.
package cells
