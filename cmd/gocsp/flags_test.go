package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/gocsp/pkg/csp"
)

func TestParseVariableHeuristic(t *testing.T) {
	got, err := parseVariableHeuristic("most_constrained")
	require.NoError(t, err)
	assert.Equal(t, csp.VarMostConstrained, got)

	_, err = parseVariableHeuristic("bogus")
	assert.Error(t, err)
}

func TestParseValueHeuristic(t *testing.T) {
	got, err := parseValueHeuristic("most_supported")
	require.NoError(t, err)
	assert.Equal(t, csp.ValMostSupported, got)

	_, err = parseValueHeuristic("bogus")
	assert.Error(t, err)
}

func TestParseLookAhead(t *testing.T) {
	got, err := parseLookAhead("mac4")
	require.NoError(t, err)
	assert.Equal(t, csp.LookMAC4, got)

	_, err = parseLookAhead("bogus")
	assert.Error(t, err)
}

func TestConfigureSolverAcceptsAllThreeFlags(t *testing.T) {
	c := csp.New()
	err := configureSolver(c, "smallest_domain", "descending", "fc")
	require.NoError(t, err)
}

func TestConfigureSolverRejectsUnknownLookAhead(t *testing.T) {
	c := csp.New()
	err := configureSolver(c, "arbitrary", "ascending", "bogus")
	assert.Error(t, err)
}

func TestBuildQueensCSPRejectsNonPositiveSize(t *testing.T) {
	_, _, err := buildQueensCSP(0)
	assert.Error(t, err)
}

func TestBuildQueensCSPSolvesFourQueens(t *testing.T) {
	c, varIDs, err := buildQueensCSP(4)
	require.NoError(t, err)
	require.True(t, c.Solve())
	assert.Len(t, varIDs, 4)
}
