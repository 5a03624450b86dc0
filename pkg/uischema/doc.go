// Package uischema loads and applies UI schema overlays that enrich form
// models with page copy, section assignments, action definitions and icons.
// The model builder stays unaware of the overlay; orchestrator callers opt
// into it through Decorator.
package uischema
