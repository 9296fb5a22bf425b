// Package registry holds the catalogue of module types a process may
// instantiate.
//
// Module types are described by HCL manifests. A set of manifests for the
// framework services and the scouting/calibration producers is embedded in
// the binary and loaded by LoadBuiltins; additional manifests can be read
// from a directory with LoadManifests. Once populated, a Registry is only
// read, so a single instance can back any number of concurrent resolutions.
package registry
