package schema

import "errors"

// ErrMalformedXML indicates [ParseXML] could not decode the input as a
// single well-formed element tree.
var ErrMalformedXML = errors.New("malformed xml document")
