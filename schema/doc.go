// Package schema implements the document-shape check that runs before a
// model document is parsed: an XSD-like validator for the structured-text
// tree format and a JSON Schema validator (backed by
// github.com/google/jsonschema-go) for the JSON format. Both expose the
// same contract -- validate a document, get back a list of path-tagged
// errors -- so the parser package can treat them interchangeably.
package schema
