// Package csp implements a finite-domain constraint satisfaction
// problem solver: integer variables over closed domains, binary and
// n-ary constraints, backtracking depth-first search with pluggable
// propagation (none, forward-checking, AC-3, AC-4) and pluggable
// variable/value ordering heuristics.
package csp

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gitrdm/gocsp/internal/stats"
)

// CSP is the single entry point problem builders and CLI drivers use to
// declare variables and constraints, configure the solve, and read back
// the result. It owns every other component (domain store, constraints,
// incidence index, arc-consistency routines, heuristics, search driver)
// for the lifetime of one solve.
type CSP struct {
	log zerolog.Logger

	vars        []*Variable
	table       *variableTable
	constraints []Constraint

	varHeuristic VariableHeuristic
	valHeuristic ValueHeuristic
	lookAhead    LookAhead
	rootConsist  RootConsistency

	timeLimit    time.Duration
	hasTimeLimit bool
	seed         int64
	rng          *rand.Rand

	idx     *incidenceIndex
	monitor *stats.Monitor

	// assigned[varID] is true once the Search Driver has formally
	// selected and committed to varID. A domain collapsed to a single live value by
	// propagation alone does NOT set this — only run()'s own
	// select-restrict-propagate cycle does, so a variable whose value
	// was only narrowed as a side effect of a neighbor's assignment
	// still gets its own turn to propagate its constraints.
	assigned []bool

	// result state, populated by Solve
	solved     bool
	feasible   bool
	timedOut   bool
	assignment []int // assignment[varID] = value, valid only if feasible
	elapsed    time.Duration
	startTime  time.Time
}

// New constructs an empty CSP with the default configuration:
// arbitrary variable selection, ascending value ordering, plain
// backtracking with no look-ahead, no time limit. Logging defaults to a
// no-op logger; pass a configured zerolog.Logger via SetLogger to
// observe a solve.
func New() *CSP {
	return &CSP{
		log:          zerolog.Nop(),
		table:        newVariableTable(),
		varHeuristic: VarArbitrary,
		valHeuristic: ValAscending,
		lookAhead:    LookBT,
		seed:         1,
		rng:          rand.New(rand.NewSource(1)),
		monitor:      stats.NewMonitor(),
	}
}

// SetLogger attaches a zerolog.Logger used for solve diagnostics.
func (c *CSP) SetLogger(l zerolog.Logger) { c.log = l }

// SetSeed seeds the pseudo-random generator the arbitrary heuristics draw
// from, for reproducible runs.
func (c *CSP) SetSeed(seed int64) {
	c.seed = seed
	c.rng = rand.New(rand.NewSource(seed))
}

// AddVariable declares a new finite-domain variable over [dMin, dMax]
// and returns its dense id. Returns a *ConfigError if dMin > dMax.
func (c *CSP) AddVariable(name string, dMin, dMax int) (int, error) {
	id := len(c.vars)
	v, err := NewVariable(id, name, dMin, dMax)
	if err != nil {
		return 0, err
	}
	c.vars = append(c.vars, v)
	c.table.add(v)
	c.log.Debug().Str("name", name).Int("id", id).Int("dMin", dMin).Int("dMax", dMax).Msg("variable added")
	return id, nil
}

// VarExpr returns the trivial affine expression for an existing
// variable, the entry point into the AffineExpr DSL:
//
//	c.VarExpr(x).Sub(c.VarExpr(y)) // x - y, still awaiting a relop
func (c *CSP) VarExpr(varID int) AffineExpr {
	return varExpr(varID)
}

// Const returns the constant affine expression k, for building
// expressions like c.VarExpr(x).Add(c.Const(3)).
func (c *CSP) Const(k float64) AffineExpr {
	return AffineExpr{constant: k}
}

func (c *CSP) nextConstraintID() int { return len(c.constraints) }

// AddLinearConstraint closes lhs <op> rhs into a LinearConstraint and
// registers it. Returns a *ConfigError if the combined expression would
// span more than two distinct variables.
func (c *CSP) AddLinearConstraint(lhs AffineExpr, op RelOp, rhs AffineExpr) (int, error) {
	lc, err := toLinearConstraint(c.nextConstraintID(), lhs, op, rhs)
	if err != nil {
		return 0, err
	}
	c.constraints = append(c.constraints, lc)
	c.log.Debug().Int("id", lc.id).Str("op", op.String()).Msg("linear constraint added")
	return lc.id, nil
}

// AddEnumeratedConstraint registers a constraint over scope whose
// feasible tuples are every combination of the scope variables' initial
// domains satisfying predicate.
func (c *CSP) AddEnumeratedConstraint(scope []int, predicate func(tuple []int) bool) (int, error) {
	domains := make([][]int, len(scope))
	for i, id := range scope {
		if id < 0 || id >= len(c.vars) {
			return 0, newConfigError("constraint scope", fmt.Sprintf("variable id %d does not exist", id))
		}
		domains[i] = c.vars[id].Dom(-1)
	}
	id := c.nextConstraintID()
	ec := NewEnumeratedConstraint(id, scope, domains, predicate)
	c.constraints = append(c.constraints, ec)
	c.log.Debug().Int("id", id).Ints("scope", scope).Msg("enumerated constraint added")
	return id, nil
}

// AddAllDifferent registers an all-different constraint over scope.
// It gets only pairwise propagation on assignment, never
// arc-consistency filtering.
func (c *CSP) AddAllDifferent(scope []int) (int, error) {
	for _, id := range scope {
		if id < 0 || id >= len(c.vars) {
			return 0, newConfigError("constraint scope", fmt.Sprintf("variable id %d does not exist", id))
		}
	}
	id := c.nextConstraintID()
	ad := NewAllDifferentConstraint(id, scope)
	c.constraints = append(c.constraints, ad)
	c.log.Debug().Int("id", id).Ints("scope", scope).Msg("all-different constraint added")
	return id, nil
}

// SetVariableHeuristic configures the variable-selection strategy.
func (c *CSP) SetVariableHeuristic(h VariableHeuristic) error {
	if h < VarArbitrary || h > VarDomOverConstr {
		return newConfigError("variable heuristic", "unknown selector")
	}
	c.varHeuristic = h
	return nil
}

// SetValueHeuristic configures the value-ordering strategy.
func (c *CSP) SetValueHeuristic(h ValueHeuristic) error {
	if h < ValArbitrary || h > ValMostSupported {
		return newConfigError("value heuristic", "unknown selector")
	}
	c.valHeuristic = h
	return nil
}

// SetLookAhead configures the propagation mode run after every tentative
// assignment.
func (c *CSP) SetLookAhead(mode LookAhead) error {
	if mode < LookBT || mode > LookMAC4 {
		return newConfigError("look-ahead mode", "unknown mode")
	}
	c.lookAhead = mode
	return nil
}

// RootConsistency selects which arc-consistency pass, if any, runs once
// over the initial domains before search begins. A contradiction found here proves infeasibility
// without exploring a single node.
type RootConsistency int

const (
	// RootNone skips preprocessing; search starts on the declared domains.
	RootNone RootConsistency = iota
	// RootAC3 runs one AC-3 pass at level 0 before search.
	RootAC3
	// RootAC4 runs one AC-4 pass at level 0 before search.
	RootAC4
)

// SetRootConsistency configures the one-shot root preprocessing pass.
func (c *CSP) SetRootConsistency(r RootConsistency) error {
	if r < RootNone || r > RootAC4 {
		return newConfigError("root consistency", "unknown mode")
	}
	c.rootConsist = r
	return nil
}

// SetTimeLimit bounds the wall-clock time solve() may spend searching.
// A limit of exactly zero is a real, already-expired limit: solve()
// times out immediately with isFeasible false. Without a
// call to SetTimeLimit, the default is no limit at all — a distinct
// state from "a limit of zero", tracked by hasTimeLimit rather than by
// overloading the zero value of timeLimit.
func (c *CSP) SetTimeLimit(d time.Duration) {
	c.timeLimit = d
	c.hasTimeLimit = true
}

// Solve runs the backtracking search and returns whether a feasible
// assignment was found. Programming errors inside the solver's own
// invariant maintenance panic rather than returning an error; a caller
// that only uses the public API above cannot trigger them.
func (c *CSP) Solve() bool {
	n := len(c.vars)
	for _, v := range c.vars {
		v.initLevels(n)
	}
	c.idx = buildIncidenceIndex(c.vars, c.constraints)
	c.monitor = stats.NewMonitor()
	c.assigned = make([]bool, n)
	c.timedOut = false
	c.feasible = false

	rootOK := true
	switch c.rootConsist {
	case RootAC3:
		rootOK = ac3(c.table, c.constraints, 0)
	case RootAC4:
		rootOK = ac4(c.table, c.constraints, 0)
	}
	if !rootOK {
		c.monitor.Contradiction()
		c.log.Info().Msg("root consistency proved infeasibility, search skipped")
	}

	// Elapsed time covers the backtracking search only, not index
	// construction or root preprocessing.
	c.startTime = time.Now()
	if rootOK {
		d := &searchDriver{csp: c}
		c.feasible = d.run(0)
	}
	c.elapsed = time.Since(c.startTime)
	c.monitor.AddSearchTime(c.elapsed)
	c.solved = true

	if c.feasible {
		c.monitor.SolutionFound()
		c.assignment = make([]int, n)
		for _, v := range c.vars {
			c.assignment[v.id] = v.AssignedValue(n)
		}
	} else {
		c.assignment = nil
	}

	c.log.Info().
		Bool("feasible", c.feasible).
		Bool("timedOut", c.timedOut).
		Dur("elapsed", c.elapsed).
		Int64("nodes", c.monitor.Snapshot().NodesExplored).
		Msg("solve finished")

	return c.feasible
}

// IsFeasible reports the outcome of the most recent Solve call.
func (c *CSP) IsFeasible() bool { return c.feasible }

// TimedOut reports whether the most recent Solve call was cut short by
// the configured time limit; when true, IsFeasible's false result is
// non-definitive.
func (c *CSP) TimedOut() bool { return c.timedOut }

// ElapsedTime returns how long the most recent Solve call's backtracking
// search ran, excluding incidence-index construction.
func (c *CSP) ElapsedTime() time.Duration { return c.elapsed }

// ExploredNodes returns the number of search-tree nodes visited during
// the most recent Solve call.
func (c *CSP) ExploredNodes() int64 {
	return c.monitor.Snapshot().NodesExplored
}

// Stats returns the full statistics snapshot of the most recent Solve
// call.
func (c *CSP) Stats() stats.Snapshot { return c.monitor.Snapshot() }

// Assignment returns the value solve() found for varID. Panics if no
// feasible solution is on record.
func (c *CSP) Assignment(varID int) int {
	if !c.feasible || c.assignment == nil {
		panic("csp: Assignment called without a feasible solution")
	}
	return c.assignment[varID]
}

// Assignments returns a copy of the full solution vector, indexed by
// variable id. Panics if no feasible solution is on record.
func (c *CSP) Assignments() []int {
	if !c.feasible || c.assignment == nil {
		panic("csp: Assignments called without a feasible solution")
	}
	out := make([]int, len(c.assignment))
	copy(out, c.assignment)
	return out
}

// NumVariables returns the number of declared variables.
func (c *CSP) NumVariables() int { return len(c.vars) }

// VariableName returns the declared name of varID.
func (c *CSP) VariableName(varID int) string { return c.vars[varID].name }

func (c *CSP) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "csp: %d variables, %d constraints", len(c.vars), len(c.constraints))
	if c.solved {
		fmt.Fprintf(&b, ", feasible=%v, nodes=%d, elapsed=%s", c.feasible, c.monitor.Snapshot().NodesExplored, c.elapsed)
	}
	return b.String()
}
