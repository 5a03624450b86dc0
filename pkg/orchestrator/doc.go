// Package orchestrator wires the loader → parser → model builder → decorator
// → renderer pipeline behind a single entry point, with optional theme
// selection resolved before rendering.
package orchestrator
