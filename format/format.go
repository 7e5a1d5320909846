package format

import (
	"errors"
	"strings"
)

// Format identifies a wire encoding for a model document.
type Format uint8

const (
	Tree Format = iota
	JSON
	Zip
)

func (f Format) String() string {
	switch f {
	case Tree:
		return "tree"
	case JSON:
		return "json"
	case Zip:
		return "zip"
	default:
		return "unknown"
	}
}

// ErrUnrecognizedExtension is returned when no registered suffix matches a
// path.
var ErrUnrecognizedExtension = errors.New("format: unrecognized file extension")

var defaultMapping = []mapping{
	{".rexs.xml", Tree},
	{".rexs", Tree},
	{".rexs.json", JSON},
	{".rexsj", JSON},
	{".rexs.zip", Zip},
	{".rexsz", Zip},
}

type mapping struct {
	suffix string
	format Format
}

// ExtensionChecker sniffs a Format from a file path's suffix. The zero
// value recognizes the built-in .rexs/.rexsj/.rexsz family; additional
// mappings registered via [ExtensionChecker.Register] take priority over
// the built-ins whenever their suffix is as long or longer, so a caller can
// override a built-in suffix outright.
type ExtensionChecker struct {
	custom []mapping
}

// NewExtensionChecker returns a checker recognizing only the built-in
// extensions.
func NewExtensionChecker() *ExtensionChecker {
	return &ExtensionChecker{}
}

// Register adds a custom suffix-to-format mapping. Longest-match wins, so
// registering both ".rexs" and ".special.rexs" resolves ambiguity by
// preferring the longer suffix regardless of registration order.
func (c *ExtensionChecker) Register(suffix string, f Format) {
	c.custom = append(c.custom, mapping{suffix, f})
}

// Sniff returns the Format implied by path's longest matching registered
// suffix, custom mappings included.
func (c *ExtensionChecker) Sniff(path string) (Format, error) {
	lower := strings.ToLower(path)

	all := make([]mapping, 0, len(c.custom)+len(defaultMapping))
	all = append(all, c.custom...)
	all = append(all, defaultMapping...)

	best := -1
	var bestFormat Format

	for _, m := range all {
		if !strings.HasSuffix(lower, m.suffix) {
			continue
		}

		if len(m.suffix) > best {
			best = len(m.suffix)
			bestFormat = m.format
		}
	}

	if best < 0 {
		return 0, ErrUnrecognizedExtension
	}

	return bestFormat, nil
}

// Archive is the external zip-container contract: given the zip's raw
// bytes, it returns the single inner document's bytes together with the
// format implied by the inner member's name. Its implementation (actually
// walking a zip central directory) is outside this module's scope.
type Archive interface {
	Unwrap(zipBytes []byte) (inner []byte, innerFormat Format, err error)
}
