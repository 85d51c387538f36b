package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItemIDsCommaSeparated(t *testing.T) {
	ids, err := parseItemIDs("19019, 12976,abc, 19019, -4, 870")
	require.NoError(t, err)
	assert.Equal(t, []int{19019, 12976, 870}, ids)
}

func TestParseItemIDsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("19019\n\n# swords below\n12976\n12976\n"), 0o644))

	ids, err := parseItemIDs("@" + path)
	require.NoError(t, err)
	assert.Equal(t, []int{19019, 12976}, ids)
}

func TestParseItemIDsMissingFile(t *testing.T) {
	_, err := parseItemIDs("@" + filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestRenderTablePadsColumns(t *testing.T) {
	out := renderTable(
		[]string{"Group", "Items"},
		[][]string{
			{"Transmog`Swords`One Hand", "412"},
			{"Scrolls", "9"},
		},
	)
	assert.Contains(t, out, "Transmog`Swords`One Hand")
	// Short cells are padded to the widest cell in the column.
	padded := "Scrolls" + strings.Repeat(" ", len("Transmog`Swords`One Hand")-len("Scrolls"))
	assert.Contains(t, out, padded)
}
