package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.rexsapi.dev/rexsapi/format"
)

func TestSniffBuiltins(t *testing.T) {
	t.Parallel()

	cases := map[string]format.Format{
		"gearbox.rexs":      format.Tree,
		"gearbox.rexs.xml":  format.Tree,
		"gearbox.rexsj":     format.JSON,
		"gearbox.rexs.json": format.JSON,
		"gearbox.rexsz":     format.Zip,
		"gearbox.rexs.zip":  format.Zip,
		"GEARBOX.REXS":      format.Tree,
	}

	c := format.NewExtensionChecker()

	for path, want := range cases {
		got, err := c.Sniff(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestSniffUnrecognized(t *testing.T) {
	t.Parallel()

	c := format.NewExtensionChecker()
	_, err := c.Sniff("gearbox.txt")
	require.ErrorIs(t, err, format.ErrUnrecognizedExtension)
}

func TestSniffCustomMappingLongestMatchWins(t *testing.T) {
	t.Parallel()

	c := format.NewExtensionChecker()
	c.Register(".special.rexs", format.JSON)

	got, err := c.Sniff("foo.special.rexs")
	require.NoError(t, err)
	assert.Equal(t, format.JSON, got)

	got, err = c.Sniff("foo.rexs")
	require.NoError(t, err)
	assert.Equal(t, format.Tree, got)
}

func TestFormatString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tree", format.Tree.String())
	assert.Equal(t, "json", format.JSON.String())
	assert.Equal(t, "zip", format.Zip.String())
}
