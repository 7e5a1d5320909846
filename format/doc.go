// Package format identifies which wire format a model document is encoded
// in, by filename extension. It knows nothing about the document content
// itself: sniffing is a pure string-suffix match, and the actual parsing
// lives in the decode/parser packages this one feeds.
package format
