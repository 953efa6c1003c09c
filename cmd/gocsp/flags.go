package main

import (
	"fmt"

	"github.com/gitrdm/gocsp/pkg/csp"
)

func parseVariableHeuristic(s string) (csp.VariableHeuristic, error) {
	switch s {
	case "arbitrary":
		return csp.VarArbitrary, nil
	case "smallest_domain":
		return csp.VarSmallestDomain, nil
	case "most_constrained":
		return csp.VarMostConstrained, nil
	case "dom_over_constr":
		return csp.VarDomOverConstr, nil
	default:
		return 0, fmt.Errorf("unknown variable heuristic %q (want arbitrary|smallest_domain|most_constrained|dom_over_constr)", s)
	}
}

func parseValueHeuristic(s string) (csp.ValueHeuristic, error) {
	switch s {
	case "arbitrary":
		return csp.ValArbitrary, nil
	case "ascending":
		return csp.ValAscending, nil
	case "descending":
		return csp.ValDescending, nil
	case "most_supported":
		return csp.ValMostSupported, nil
	default:
		return 0, fmt.Errorf("unknown value heuristic %q (want arbitrary|ascending|descending|most_supported)", s)
	}
}

func parseLookAhead(s string) (csp.LookAhead, error) {
	switch s {
	case "bt":
		return csp.LookBT, nil
	case "fc":
		return csp.LookFC, nil
	case "mac3":
		return csp.LookMAC3, nil
	case "mac4":
		return csp.LookMAC4, nil
	default:
		return 0, fmt.Errorf("unknown look-ahead mode %q (want bt|fc|mac3|mac4)", s)
	}
}

func parseRootConsistency(s string) (csp.RootConsistency, error) {
	switch s {
	case "none":
		return csp.RootNone, nil
	case "ac3":
		return csp.RootAC3, nil
	case "ac4":
		return csp.RootAC4, nil
	default:
		return 0, fmt.Errorf("unknown root consistency %q (want none|ac3|ac4)", s)
	}
}

// configureSolver applies the three heuristic/look-ahead flags to csp,
// shared by every subcommand that builds and solves a problem.
func configureSolver(c *csp.CSP, varH, valH, look string) error {
	vh, err := parseVariableHeuristic(varH)
	if err != nil {
		return err
	}
	if err := c.SetVariableHeuristic(vh); err != nil {
		return err
	}
	vo, err := parseValueHeuristic(valH)
	if err != nil {
		return err
	}
	if err := c.SetValueHeuristic(vo); err != nil {
		return err
	}
	la, err := parseLookAhead(look)
	if err != nil {
		return err
	}
	return c.SetLookAhead(la)
}
