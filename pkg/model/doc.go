// Package model defines the typed form model consumed by renderers. Builders
// reside in internal/model but return the types defined here. Schema
// extensions under the `x-formgen` namespace flow into `FormModel` and `Field`
// metadata, and the curated `UIHints` map surfaces renderer-facing directives
// such as `placeholder`, `helpText`, `widget` and `submitLabel`.
package model
