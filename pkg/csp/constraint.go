package csp

import "fmt"

// Constraint is the polymorphic constraint sum type: a
// small interface satisfied by each concrete constraint kind (Enumerated,
// Linear, AllDifferent) rather than a deep class hierarchy. Every
// constraint records its own scope and knows how to test feasibility
// against a full assignment and how to propagate a fresh assignment into
// the domains of its still-unassigned neighbors.
type Constraint interface {
	// ID is the dense identifier assigned by the Constraint Registry at
	// add_constraint time.
	ID() int

	// Scope returns the variable ids this constraint ranges over, in
	// the order the constraint was declared with.
	Scope() []int

	// IsFeasible reports whether the given assignment (varID -> value)
	// satisfies the constraint. Scope variables missing from the map
	// leave the check vacuously true, so a partial assignment is only
	// rejected once the values it does hold violate the constraint.
	IsFeasible(assignment map[int]int) bool

	// Propagate applies the effect of just committing assignedVal to
	// assignedID: candidate values of the constraint's other scope
	// variable(s) that can no longer satisfy the constraint, given that
	// commitment, are removed from level+1. assignedID is
	// not required to be restricted in the store yet; its value is
	// passed explicitly rather than re-derived from the domain.
	// Returns false if propagation emptied a domain (contradiction).
	Propagate(store *variableTable, assignedID, assignedVal, level int) bool
}

// Binary is the subset of Constraint that additionally supports arc
// reversal: an arc (x, y) processed by AC-3/AC-4 needs the (y, x)
// direction too, and rather than special-casing direction in the
// arc-consistency routines, each binary constraint can hand back a
// lightweight reversed view of itself.
type Binary interface {
	Constraint
	Var1() int
	Var2() int
	// Reverse returns a constraint with Var1/Var2 swapped, propagating
	// in the opposite direction.
	Reverse() Binary
}

// variableTable is the narrow view of the variable set a constraint
// needs: lookup by id plus the VDS operations. CSP holds one.
type variableTable struct {
	byID map[int]*Variable
}

func newVariableTable() *variableTable {
	return &variableTable{byID: make(map[int]*Variable)}
}

func (t *variableTable) add(v *Variable) { t.byID[v.id] = v }

func (t *variableTable) get(id int) *Variable {
	v, ok := t.byID[id]
	if !ok {
		panic(fmt.Sprintf("csp: no variable with id %d", id))
	}
	return v
}

// ---- Enumerated constraint ---------------------------------------------

// EnumeratedConstraint materializes its feasible tuples up front. It
// is the general-purpose constraint: any predicate over a fixed scope
// can be turned into one by enumerating the Cartesian product of the
// variables' initial domains and keeping the tuples that satisfy the
// predicate.
type EnumeratedConstraint struct {
	id    int
	scope []int
	// feasible holds one entry per admissible assignment, each tuple in
	// scope order.
	feasible [][]int
}

// NewEnumeratedConstraint builds the constraint by filtering every
// combination of the given per-variable domains through predicate.
// domains[i] is the candidate value set for scope[i].
func NewEnumeratedConstraint(id int, scope []int, domains [][]int, predicate func(tuple []int) bool) *EnumeratedConstraint {
	var feasible [][]int
	var recurse func(prefix []int, i int)
	recurse = func(prefix []int, i int) {
		if i == len(domains) {
			tuple := make([]int, len(prefix))
			copy(tuple, prefix)
			if predicate == nil || predicate(tuple) {
				feasible = append(feasible, tuple)
			}
			return
		}
		for _, val := range domains[i] {
			recurse(append(prefix, val), i+1)
		}
	}
	recurse(nil, 0)
	return &EnumeratedConstraint{id: id, scope: scope, feasible: feasible}
}

func (c *EnumeratedConstraint) ID() int      { return c.id }
func (c *EnumeratedConstraint) Scope() []int { return c.scope }

func (c *EnumeratedConstraint) IsFeasible(assignment map[int]int) bool {
	tuple := make([]int, len(c.scope))
	for i, id := range c.scope {
		v, ok := assignment[id]
		if !ok {
			return true // partial assignment: vacuously not yet violated
		}
		tuple[i] = v
	}
	for _, ft := range c.feasible {
		if intSliceEqual(ft, tuple) {
			return true
		}
	}
	return false
}

// Propagate only has binary-arity propagation wired into AC-3/AC-4;
// forward-checking calls it directly for every constraint incident to
// the assigned variable, whatever its arity. Panics with
// ErrVariableNotInScope if assignedID is not in the scope.
//
// Every other scope member is filtered regardless of its current domain
// size: a domain that has already collapsed to one value is not the
// same thing as a variable the search driver has formally selected and
// committed to. Skipping
// already-singleton neighbors here would silently let an incompatible
// pair of values through whenever the singleton arose from propagation
// rather than a branching decision — filtering it anyway either leaves
// it untouched (still supported) or empties it (a real contradiction).
func (c *EnumeratedConstraint) Propagate(store *variableTable, assignedID, assignedVal, level int) bool {
	if !containsInt(c.scope, assignedID) {
		panic(ErrVariableNotInScope)
	}
	for _, other := range c.scope {
		if other == assignedID {
			continue
		}
		if !c.filterAgainstAssigned(store, other, assignedID, assignedVal, level) {
			return false
		}
	}
	return true
}

// filterAgainstAssigned iterates the live domain at level+1, not level:
// an earlier constraint in the same forward-checking pass may already
// have pruned this neighbor at level+1, and re-removing a value that is
// gone there would violate the store's remove contract.
func (c *EnumeratedConstraint) filterAgainstAssigned(store *variableTable, other, assignedID, assignedVal, level int) bool {
	ov := store.get(other)
	for _, cand := range ov.Dom(level + 1) {
		if !c.hasSupport(store, other, cand, assignedID, assignedVal, level) {
			ov.Remove(cand, level+1)
		}
	}
	return ov.Size(level+1) > 0
}

// hasSupport reports whether there is a feasible tuple consistent with
// other=cand, assignedID=assignedVal, and the current live domain of
// every remaining scope variable.
func (c *EnumeratedConstraint) hasSupport(store *variableTable, other, cand, assignedID, assignedVal, level int) bool {
	fixed := map[int]int{other: cand, assignedID: assignedVal}
	var rest []int
	for _, id := range c.scope {
		if id != other && id != assignedID {
			rest = append(rest, id)
		}
	}
	var search func(i int) bool
	search = func(i int) bool {
		if i == len(rest) {
			tuple := make([]int, len(c.scope))
			for j, id := range c.scope {
				tuple[j] = fixed[id]
			}
			for _, ft := range c.feasible {
				if intSliceEqual(ft, tuple) {
					return true
				}
			}
			return false
		}
		id := rest[i]
		for _, v := range store.get(id).Dom(level + 1) {
			fixed[id] = v
			if search(i + 1) {
				return true
			}
		}
		return false
	}
	return search(0)
}

// Reverse on an enumerated binary constraint swaps the declared scope
// order and swaps each materialized tuple to match, so the reversed
// constraint admits exactly the same value pairs.
func (c *EnumeratedConstraint) reversedBinary() *EnumeratedConstraint {
	if len(c.scope) != 2 {
		panic("csp: Reverse only defined for binary enumerated constraints")
	}
	swapped := make([][]int, len(c.feasible))
	for i, t := range c.feasible {
		swapped[i] = []int{t[1], t[0]}
	}
	return &EnumeratedConstraint{id: c.id, scope: []int{c.scope[1], c.scope[0]}, feasible: swapped}
}

func (c *EnumeratedConstraint) Var1() int { return c.scope[0] }
func (c *EnumeratedConstraint) Var2() int { return c.scope[1] }
func (c *EnumeratedConstraint) Reverse() Binary {
	return c.reversedBinary()
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsInt(s []int, x int) bool {
	for _, v := range s {
		if v == x {
			return true
		}
	}
	return false
}

// ---- Linear constraint -------------------------------------------------

// RelOp is a linear relational operator.
type RelOp int

const (
	RelEq RelOp = iota
	RelNeq
	RelLess
	RelLessEq
	RelGreater
	RelGreaterEq
)

func (r RelOp) String() string {
	switch r {
	case RelEq:
		return "=="
	case RelNeq:
		return "!="
	case RelLess:
		return "<"
	case RelLessEq:
		return "<="
	case RelGreater:
		return ">"
	case RelGreaterEq:
		return ">="
	default:
		return "?"
	}
}

func (r RelOp) check(lhs, rhs float64) bool {
	switch r {
	case RelEq:
		return lhs == rhs
	case RelNeq:
		return lhs != rhs
	case RelLess:
		return lhs < rhs
	case RelLessEq:
		return lhs <= rhs
	case RelGreater:
		return lhs > rhs
	case RelGreaterEq:
		return lhs >= rhs
	default:
		return false
	}
}

// LinearConstraint represents coef1*var1 + coef2*var2 RelOp rhs, built
// via AffineExpr's comparison methods. Coefficients and rhs
// are real-valued; var2/coef2 may be absent (hasVar2 == false)
// for a single-variable linear constraint.
//
// Reverse deliberately does NOT flip the relational operator: it only
// swaps (var1,coef1) with (var2,coef2). coef1*x + coef2*y RelOp rhs is
// symmetric in which variable is listed first, so the swapped form
// still reads coef2*y + coef1*x RelOp rhs. Flipping RelOp here would
// silently invert every linear constraint's reversed propagation.
type LinearConstraint struct {
	id      int
	var1    int
	coef1   float64
	var2    int
	coef2   float64
	hasVar2 bool
	rhs     float64
	op      RelOp
}

// NewLinearConstraint builds coef1*var1 + coef2*var2 op rhs. Set hasVar2
// false for a unary linear constraint (coef2 is then ignored).
func NewLinearConstraint(id, var1 int, coef1 float64, var2 int, coef2 float64, hasVar2 bool, op RelOp, rhs float64) *LinearConstraint {
	return &LinearConstraint{id: id, var1: var1, coef1: coef1, var2: var2, coef2: coef2, hasVar2: hasVar2, rhs: rhs, op: op}
}

func (c *LinearConstraint) ID() int { return c.id }

func (c *LinearConstraint) Scope() []int {
	if c.hasVar2 {
		return []int{c.var1, c.var2}
	}
	return []int{c.var1}
}

func (c *LinearConstraint) Var1() int { return c.var1 }
func (c *LinearConstraint) Var2() int { return c.var2 }

func (c *LinearConstraint) IsFeasible(assignment map[int]int) bool {
	v1, ok := assignment[c.var1]
	if !ok {
		return true
	}
	lhs := c.coef1 * float64(v1)
	if c.hasVar2 {
		v2, ok := assignment[c.var2]
		if !ok {
			return true
		}
		lhs += c.coef2 * float64(v2)
	}
	return c.op.check(lhs, c.rhs)
}

// Propagate substitutes the just-assigned variable's value and filters
// the other variable's live domain at level+1 down to the values that
// keep the (now single-variable) inequality satisfiable. A zero
// coefficient on the remaining variable is a degenerate constraint: if
// it still can't hold given the fixed side, every remaining value is
// infeasible and propagation contradicts immediately.
func (c *LinearConstraint) Propagate(store *variableTable, assignedID, assignedVal, level int) bool {
	if !c.hasVar2 {
		// A unary constraint has no neighbor to filter, and it carries
		// no arc for the AC passes either, so the assignment itself is
		// judged here: a committed value violating the bound is a
		// contradiction under forward checking exactly as it would be
		// under the plain backtracking feasibility check.
		if assignedID != c.var1 {
			panic(ErrVariableNotInScope)
		}
		return c.op.check(c.coef1*float64(assignedVal), c.rhs)
	}
	var otherID int
	var otherCoef, assignedCoef float64
	if assignedID == c.var1 {
		otherID, otherCoef, assignedCoef = c.var2, c.coef2, c.coef1
	} else if assignedID == c.var2 {
		otherID, otherCoef, assignedCoef = c.var1, c.coef1, c.coef2
	} else {
		panic(ErrVariableNotInScope)
	}
	updatedRHS := c.rhs - assignedCoef*float64(assignedVal)

	ov := store.get(otherID)
	if otherCoef == 0 {
		if c.op.check(0, updatedRHS) {
			return true
		}
		for _, cand := range ov.Dom(level + 1) {
			ov.Remove(cand, level+1)
		}
		return ov.Size(level+1) > 0
	}
	for _, cand := range ov.Dom(level + 1) {
		if !c.op.check(otherCoef*float64(cand), updatedRHS) {
			ov.Remove(cand, level+1)
		}
	}
	return ov.Size(level+1) > 0
}

// Reverse swaps which variable is listed first without touching RelOp
// (see the LinearConstraint doc comment for why).
func (c *LinearConstraint) Reverse() Binary {
	if !c.hasVar2 {
		panic("csp: Reverse only defined for binary linear constraints")
	}
	return &LinearConstraint{
		id:      c.id,
		var1:    c.var2,
		coef1:   c.coef2,
		var2:    c.var1,
		coef2:   c.coef1,
		hasVar2: true,
		rhs:     c.rhs,
		op:      c.op,
	}
}

// ---- All-different constraint ------------------------------------------

// AllDifferentConstraint enforces pairwise distinctness over an n-ary
// scope. Propagation is the simple form: a freshly assigned value is
// removed from every other unassigned scope member. No arc-consistency
// or Régin-style matching-based filtering is performed.
type AllDifferentConstraint struct {
	id    int
	scope []int
}

func NewAllDifferentConstraint(id int, scope []int) *AllDifferentConstraint {
	s := make([]int, len(scope))
	copy(s, scope)
	return &AllDifferentConstraint{id: id, scope: s}
}

func (c *AllDifferentConstraint) ID() int      { return c.id }
func (c *AllDifferentConstraint) Scope() []int { return c.scope }

func (c *AllDifferentConstraint) IsFeasible(assignment map[int]int) bool {
	seen := make(map[int]bool)
	for _, id := range c.scope {
		v, ok := assignment[id]
		if !ok {
			continue
		}
		if seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Propagate filters every other scope member regardless of whether its
// domain already reads as a singleton (see EnumeratedConstraint.Propagate's
// doc comment): a value already removed down to one candidate by an
// unrelated constraint has not been formally assigned, and a genuinely
// assigned neighbor sharing assignedVal must still be caught here rather
// than silently skipped. Panics with ErrVariableNotInScope if assignedID
// is not in the scope.
func (c *AllDifferentConstraint) Propagate(store *variableTable, assignedID, assignedVal, level int) bool {
	if !containsInt(c.scope, assignedID) {
		panic(ErrVariableNotInScope)
	}
	for _, other := range c.scope {
		if other == assignedID {
			continue
		}
		ov := store.get(other)
		if ov.hasLive(assignedVal, level+1) {
			ov.Remove(assignedVal, level+1)
			if ov.Size(level+1) == 0 {
				return false
			}
		}
	}
	return true
}
