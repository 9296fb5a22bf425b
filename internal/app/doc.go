// Package app contains the core application logic. It builds the module
// registry, loads documents in any supported format, resolves them into
// plans and reports the outcome, decoupled from any specific entrypoint
// like a CLI.
package app
