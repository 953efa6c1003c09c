package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchQueensProducesOneRowPerLookAhead(t *testing.T) {
	rows, err := benchQueens(4, 0)
	require.NoError(t, err)
	require.Len(t, rows, len(benchLookAheads))
	for _, r := range rows {
		assert.True(t, r.feasible, "4-queens should be feasible under %s", r.look)
		assert.False(t, r.timedOut)
	}
}

func TestBenchColoringDirRunsEveryInstance(t *testing.T) {
	dir := t.TempDir()
	// C4 is 2-colorable, so with k=2 every look-ahead mode must agree.
	c4 := "p edge 4 4\ne 1 2\ne 2 3\ne 3 4\ne 4 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c4.col"), []byte(c4), 0o644))

	rows, err := benchColoringDir(dir, 2, 0)
	require.NoError(t, err)
	require.Len(t, rows, len(benchLookAheads))
	for _, r := range rows {
		assert.True(t, r.feasible, "C4 should be 2-colorable under %s", r.look)
	}
}

func TestBenchColoringDirRejectsEmptyDir(t *testing.T) {
	_, err := benchColoringDir(t.TempDir(), 3, 0)
	assert.Error(t, err)
}

func TestPrintBenchReportWritesHeaderAndRows(t *testing.T) {
	var sb strings.Builder
	printBenchReport(&sb, []benchRow{{problem: "c4.col/k=2", varH: "smallest_domain", valH: "ascending", look: "fc", feasible: true}})
	out := sb.String()
	assert.Contains(t, out, "PROBLEM")
	assert.Contains(t, out, "c4.col/k=2")
	assert.Contains(t, out, "fc")
}

func TestParseRootConsistency(t *testing.T) {
	_, err := parseRootConsistency("ac3")
	require.NoError(t, err)
	_, err = parseRootConsistency("bogus")
	assert.Error(t, err)
}
