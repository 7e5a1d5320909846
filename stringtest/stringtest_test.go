package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.rexsapi.dev/rexsapi/stringtest"
)

func TestJoinLF(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		lines []string
		want  string
	}{
		"no lines":    {lines: nil, want: ""},
		"single line": {lines: []string{`<model version="1.4">`}, want: `<model version="1.4">`},
		"document": {
			lines: []string{
				`<components>`,
				`  <component id="1" type="gear_unit"/>`,
				`</components>`,
			},
			want: "<components>\n  <component id=\"1\" type=\"gear_unit\"/>\n</components>",
		},
		"keeps empty lines": {
			lines: []string{"a", "", "b"},
			want:  "a\n\nb",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.JoinLF(tc.lines...))
		})
	}
}

func TestJoinCRLF(t *testing.T) {
	t.Parallel()

	assert.Empty(t, stringtest.JoinCRLF())
	assert.Equal(t, "id=1\r\ntype=shaft", stringtest.JoinCRLF("id=1", "type=shaft"))
}

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty": {
			input: "",
			want:  "",
		},
		"single unindented line": {
			input: "account_for_gravity: true",
			want:  "account_for_gravity: true",
		},
		"strips one leading and trailing newline": {
			input: "\npayload\n",
			want:  "payload",
		},
		"dedents common prefix": {
			input: `
				{"model": {
				  "components": []
				}}`,
			want: "{\"model\": {\n  \"components\": []\n}}",
		},
		"keeps relative indentation": {
			input: "\n    <array>\n      <c>1</c>\n    </array>",
			want:  "<array>\n  <c>1</c>\n</array>",
		},
		"blank lines do not shrink the prefix": {
			input: "\n    first\n\n    second",
			want:  "first\n\nsecond",
		},
		"whitespace-only lines become empty": {
			input: "\n  a\n \n  b",
			want:  "a\n\nb",
		},
		"mixed depth uses shortest": {
			input: "\n    outer\n      inner\n    outer",
			want:  "outer\n  inner\nouter",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}
