// Package validate holds the semantic checks that evaluate values against
// database metadata: attribute ranges, unit agreement, and (via
// [Validator.CheckModel]) the relation-role and subcomponent checks the
// relation package implements. The schema-driven element/type/attribute
// checks that run ahead of decoding live in the schema package instead;
// this package only ever sees already-decoded [value.Value]s.
package validate
