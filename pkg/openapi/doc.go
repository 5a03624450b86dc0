// Package openapi exposes the public contracts for the loader and parser
// stages of the form pipeline. Implementations live under internal/openapi so
// kin-openapi types never leak to consumers.
package openapi
