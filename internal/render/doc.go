// Package render turns plans, failures and module types into output for
// people and for other tools: styled text, JSON, and HCL dumps of the fully
// expanded configuration.
package render
