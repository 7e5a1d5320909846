// Package stringtest holds helpers for building expected multi-line test
// strings with explicit line endings and indentation.
package stringtest

import "strings"

// JoinLF joins the given strings with LF line endings:
//
//	stringtest.JoinLF("a", "b", "c") // -> "a\nb\nc"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// JoinCRLF joins the given strings with CRLF line endings, for expected
// output on Windows:
//
//	stringtest.JoinCRLF("a", "b", "c") // -> "a\r\nb\r\nc"
func JoinCRLF(ss ...string) string {
	return strings.Join(ss, "\r\n")
}

// Input dedents a raw-string test fixture: one leading and one trailing
// newline are dropped, the longest common leading whitespace of the
// non-blank lines is removed, and whitespace-only lines become empty.
// This lets fixtures sit indented inside test source:
//
//	doc := stringtest.Input(`
//	    key: value
//	    nested:
//	      child: data`)
//	// -> "key: value\nnested:\n  child: data"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	prefix := ""
	first := true

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		ws := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

		if first {
			prefix = ws
			first = false

			continue
		}

		i := 0
		for i < len(prefix) && i < len(ws) && prefix[i] == ws[i] {
			i++
		}

		prefix = prefix[:i]
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}

		lines[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(lines, "\n")
}
