// Package pipeline runs clustering over every module of an event.
//
// It wires the ccl engine and assembly into a bounded parallel-for over
// the modules of a cells.Container. Each module task owns only its own
// slot of the result, so no locks are taken and one module's failure
// never aborts the others; failures are collected on the RunResult.
// The pipeline does not own domain logic. It delegates to ccl.
package pipeline
