// Package schema describes forms declaratively. A Form is an ordered list of
// Fields; every Field carries an ordered list of Rules expressed as tagged
// data (`required`, `minLength`, `maxLength`, `oneOf`, `pattern`) so the same
// definition can be loaded from YAML/JSON, rendered by any renderer, and
// evaluated by pkg/validation without reflection. Select fields additionally
// carry an option set that maps stored codes to human-readable labels.
package schema
