package csp

import "time"

// LookAhead selects how much constraint propagation the Search Driver
// performs after each tentative assignment, before recursing.
type LookAhead int

const (
	// LookBT is plain chronological backtracking: no propagation beyond
	// checking the freshly assigned variable's own constraints against
	// the complete set of currently assigned variables.
	LookBT LookAhead = iota
	// LookFC is forward checking: every constraint touching the
	// assigned variable removes, from each of its still-unassigned
	// neighbors, the values no longer consistent with the assignment.
	LookFC
	// LookMAC3 maintains arc consistency via AC-3 after every
	// assignment, restricted to the live domains at the new level.
	LookMAC3
	// LookMAC4 maintains arc consistency via AC-4 after every
	// assignment.
	LookMAC4
)

// searchDriver runs the backtracking DFS over a CSP whose incidence
// index has already been built. Everything it touches (variableTable,
// constraints, heuristics, AC routines) is injected via the csp facade
// so this file has no direct dependency on CSP's public API surface.
type searchDriver struct {
	csp *CSP
}

// run attempts to extend the assignment from level to a full solution.
// It returns true the first time every variable is assigned, leaving
// the live domains at the deepest successful level each collapsed to a
// single value (the solution). level is also the count of variables
// already assigned; which variables those are depends on the variable
// heuristic, not on their ids.
func (d *searchDriver) run(level int) bool {
	csp := d.csp

	// step 1: every variable formally assigned means a full solution
	unassigned := csp.unassignedVars()
	if len(unassigned) == 0 {
		return true
	}

	if csp.deadlineExceeded() {
		csp.timedOut = true
		return false
	}

	csp.monitor.NodeExplored()
	csp.monitor.Depth(level)

	// step 2: select the branching variable
	xID := selectVariable(csp.varHeuristic, unassigned, level, csp.idx, csp.rng)
	x := csp.table.get(xID)

	// step 3: order its candidate values
	candidates := orderValues(csp.valHeuristic, x, level, csp.idx, csp.rng)

	// xID counts as assigned for the rest of this frame regardless of
	// which candidate (if any) ultimately succeeds: once selected it has
	// gone through its own propagate() cycle, which a bare singleton
	// domain cannot stand in for.
	csp.assigned[xID] = true

	for _, a := range candidates {
		if csp.deadlineExceeded() {
			csp.timedOut = true
			return false
		}
		if !x.hasLive(a, level) {
			continue
		}

		// step 4: push a new level and commit the tentative assignment
		csp.pushLevelAll(level)
		x.RestrictTo(a, level+1)

		// step 5/6: run the configured look-ahead propagation
		consistent := d.propagate(xID, a, level)

		// step 7: recurse on success, otherwise undo and try the next value
		if consistent && d.run(level+1) {
			return true
		}

		csp.monitor.Backtrack()
		csp.resetLevelAll(level)
	}

	// step 8: every candidate value failed; report failure to the caller
	// so it can try its own next value (or give up, at level 0).
	csp.assigned[xID] = false
	return false
}

// propagate applies the look-ahead mode configured on csp after
// assignedVal has just been committed to xID at level+1. level is the
// pre-assignment (parent) level throughout: a Propagate call prunes
// neighbor domains at level+1, while the AC passes read and write the
// single new level (level+1) only.
func (d *searchDriver) propagate(xID, assignedVal, level int) bool {
	csp := d.csp
	csp.monitor.Propagation()

	switch csp.lookAhead {
	case LookBT:
		return checkAssignedConstraints(csp.table, csp.constraintsOn(xID), level+1)
	case LookFC:
		ok := forwardCheck(csp.table, csp.constraintsOn(xID), xID, assignedVal, level)
		if !ok {
			csp.monitor.Contradiction()
		}
		return ok
	case LookMAC3:
		// The assignment itself is propagated first: arc consistency only
		// covers binary constraints, so the forward-checking step is what
		// carries the assignment into n-ary (all-different) neighbors.
		ok := forwardCheck(csp.table, csp.constraintsOn(xID), xID, assignedVal, level) &&
			ac3(csp.table, csp.constraints, level+1)
		if !ok {
			csp.monitor.Contradiction()
		}
		return ok
	case LookMAC4:
		ok := forwardCheck(csp.table, csp.constraintsOn(xID), xID, assignedVal, level) &&
			ac4(csp.table, csp.constraints, level+1)
		if !ok {
			csp.monitor.Contradiction()
		}
		return ok
	default:
		return true
	}
}

// checkAssignedConstraints reports whether every constraint touching
// xID is satisfied by the currently fully-assigned subset of its scope,
// used by plain backtracking (no domain filtering, just a feasibility
// check against the variables that already have singleton domains).
func checkAssignedConstraints(table *variableTable, cs []Constraint, level int) bool {
	for _, c := range cs {
		assignment := make(map[int]int)
		for _, id := range c.Scope() {
			v := table.get(id)
			if v.Size(level) == 1 {
				assignment[id] = v.AssignedValue(level)
			}
		}
		// Scope variables still missing from the map leave the check
		// vacuously satisfiable; IsFeasible treats them that way.
		if !c.IsFeasible(assignment) {
			return false
		}
	}
	return true
}

// forwardCheck runs each constraint touching xID's Propagate, which
// filters the live domains of xID's still-unassigned neighbors at
// level+1. xID must already be committed to assignedVal at level+1;
// otherwise it panics with ErrUnassignedVariable.
func forwardCheck(table *variableTable, cs []Constraint, xID, assignedVal, level int) bool {
	if table.get(xID).AssignedValue(level+1) != assignedVal {
		panic(ErrUnassignedVariable)
	}
	for _, c := range cs {
		if !c.Propagate(table, xID, assignedVal, level) {
			return false
		}
	}
	return true
}

func (csp *CSP) deadlineExceeded() bool {
	if !csp.hasTimeLimit {
		return false
	}
	return time.Since(csp.startTime) >= csp.timeLimit
}

// unassignedVars returns every variable not yet formally selected and
// committed by the search driver. A domain
// narrowed to a singleton purely by propagation from another variable's
// assignment is NOT "assigned" in this sense until it is itself selected
// and run through its own propagate() cycle — see csp.assigned's doc
// comment for why size-1 alone is the wrong signal here.
func (csp *CSP) unassignedVars() []*Variable {
	var out []*Variable
	for _, v := range csp.vars {
		if !csp.assigned[v.id] {
			out = append(out, v)
		}
	}
	return out
}

func (csp *CSP) pushLevelAll(level int) {
	for _, v := range csp.vars {
		v.PushLevel(level)
	}
}

func (csp *CSP) resetLevelAll(level int) {
	for _, v := range csp.vars {
		v.ResetLevel(level)
	}
}

// constraintsOn returns every constraint incident to varID.
func (csp *CSP) constraintsOn(varID int) []Constraint {
	var out []Constraint
	for _, c := range csp.constraints {
		if csp.idx.incident[varID][c.ID()] {
			out = append(out, c)
		}
	}
	return out
}
