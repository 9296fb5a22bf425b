// Package plan validates a configuration document against a module registry
// and resolves it into an immutable execution plan.
//
// Resolution is a pure function of the document and the registry. It binds
// every module instance to its type, applies parameter defaults, expands
// sequences into the paths that use them, orders paths according to the
// process schedule and classifies every input tag as local or external.
// All problems found along the way are collected and returned together as
// Errors; softer findings are attached to the plan as Warnings.
//
// Two resolutions of the same document produce structurally identical plans
// with the same ID.
package plan
