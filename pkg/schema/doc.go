// Package schema validates raw request payloads against a declared field
// schema, producing a normalized payload or a ValidationError that lists
// every failing field.
//
// Validation is all-or-nothing: a payload either passes every declared check
// or the whole request is rejected. Ad-hoc predicates that fall outside the
// field schema (file parts, cross-field rules) are appended with Check and
// fold into the same error.
package schema
