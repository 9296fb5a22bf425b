// Package config defines the format-agnostic model of a process configuration
// document, along with the Loader interface implemented by the concrete
// front-ends (HCL, YAML).
//
// A `config.Document` is what package plan resolves. It is deliberately dumb:
// values are already evaluated into cty values, references are plain names
// with source ranges, and nothing is checked against the module registry yet.
// Duplicate labels and repeated process or source blocks are kept as they
// were written so that resolution can report them with their locations.
package config
