package csp

import (
	"math/rand"
	"testing"
)

func TestSelectVariableSmallestDomain(t *testing.T) {
	a, _ := NewVariable(0, "a", 0, 3)
	b, _ := NewVariable(1, "b", 0, 1)
	c, _ := NewVariable(2, "c", 0, 5)
	for _, v := range []*Variable{a, b, c} {
		v.initLevels(1)
	}
	idx := buildIncidenceIndex([]*Variable{a, b, c}, nil)
	got := selectVariable(VarSmallestDomain, []*Variable{a, b, c}, 0, idx, rand.New(rand.NewSource(1)))
	if got != b.id {
		t.Fatalf("expected smallest-domain to pick variable %d, got %d", b.id, got)
	}
}

func TestSelectVariableMostConstrained(t *testing.T) {
	a, _ := NewVariable(0, "a", 0, 3)
	b, _ := NewVariable(1, "b", 0, 3)
	c, _ := NewVariable(2, "c", 0, 3)
	for _, v := range []*Variable{a, b, c} {
		v.initLevels(1)
	}
	// b is binary-adjacent to both a and c: degree(b) = 2 > 1.
	cs := []Constraint{
		NewLinearConstraint(0, 0, 1, 1, -1, true, RelNeq, 0),
		NewLinearConstraint(1, 1, 1, 2, -1, true, RelNeq, 0),
	}
	idx := buildIncidenceIndex([]*Variable{a, b, c}, cs)
	got := selectVariable(VarMostConstrained, []*Variable{a, b, c}, 0, idx, nil)
	if got != b.id {
		t.Fatalf("expected most_constrained to pick variable %d (degree 2), got %d", b.id, got)
	}
}

// TestMostConstrainedIgnoresNonBinaryConstraints: unary and n-ary
// constraints contribute nothing to the static degree, so a variable
// buried in all-different scopes still loses to one with more binary
// neighbors.
func TestMostConstrainedIgnoresNonBinaryConstraints(t *testing.T) {
	a, _ := NewVariable(0, "a", 0, 3)
	b, _ := NewVariable(1, "b", 0, 3)
	c, _ := NewVariable(2, "c", 0, 3)
	for _, v := range []*Variable{a, b, c} {
		v.initLevels(1)
	}
	cs := []Constraint{
		NewAllDifferentConstraint(0, []int{0, 1, 2}),
		NewLinearConstraint(1, 0, 1, 0, 0, false, RelGreaterEq, 1), // unary bound on a
		NewLinearConstraint(2, 1, 1, 2, -1, true, RelNeq, 0),       // b != c
	}
	idx := buildIncidenceIndex([]*Variable{a, b, c}, cs)
	if got := idx.degree(0); got != 0 {
		t.Fatalf("degree(a) = %d, want 0 (all-different and unary constraints do not count)", got)
	}
	if got := idx.degree(1); got != 1 {
		t.Fatalf("degree(b) = %d, want 1", got)
	}
	got := selectVariable(VarMostConstrained, []*Variable{a, b, c}, 0, idx, nil)
	if got != b.id {
		t.Fatalf("expected most_constrained to pick variable %d, got %d", b.id, got)
	}
}

func TestSelectVariableDomOverConstrIsolatedFallback(t *testing.T) {
	a, _ := NewVariable(0, "a", 0, 3)
	b, _ := NewVariable(1, "b", 0, 3)
	for _, v := range []*Variable{a, b} {
		v.initLevels(1)
	}
	idx := buildIncidenceIndex([]*Variable{a, b}, nil) // no constraints: both isolated
	rng := rand.New(rand.NewSource(42))
	got := selectVariable(VarDomOverConstr, []*Variable{a, b}, 0, idx, rng)
	if got != a.id && got != b.id {
		t.Fatalf("expected the isolated fallback to return one of the candidates, got %d", got)
	}
}

func TestSelectVariableArbitraryPicksAmongUnassigned(t *testing.T) {
	a, _ := NewVariable(0, "a", 0, 3)
	b, _ := NewVariable(1, "b", 0, 3)
	c, _ := NewVariable(2, "c", 0, 3)
	for _, v := range []*Variable{a, b, c} {
		v.initLevels(1)
	}
	idx := buildIncidenceIndex([]*Variable{a, b, c}, nil)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		got := selectVariable(VarArbitrary, []*Variable{a, b, c}, 0, idx, rng)
		if got != a.id && got != b.id && got != c.id {
			t.Fatalf("arbitrary selection returned an id outside the candidate set: %d", got)
		}
	}
}

func TestOrderValuesArbitraryIsPermutation(t *testing.T) {
	v, _ := NewVariable(0, "v", 0, 4)
	v.initLevels(1)
	idx := buildIncidenceIndex([]*Variable{v}, nil)
	rng := rand.New(rand.NewSource(3))

	got := orderValues(ValArbitrary, v, 0, idx, rng)
	seen := make(map[int]bool, len(got))
	for _, x := range got {
		seen[x] = true
	}
	for want := 0; want <= 4; want++ {
		if !seen[want] {
			t.Fatalf("arbitrary order dropped value %d: %v", want, got)
		}
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 values, got %d: %v", len(got), got)
	}
}

func TestOrderValuesAscendingDescending(t *testing.T) {
	v, _ := NewVariable(0, "v", 0, 3)
	v.initLevels(1)
	idx := buildIncidenceIndex([]*Variable{v}, nil)

	rng := rand.New(rand.NewSource(1))

	asc := orderValues(ValAscending, v, 0, idx, rng)
	for i := 1; i < len(asc); i++ {
		if asc[i-1] > asc[i] {
			t.Fatalf("ascending order violated: %v", asc)
		}
	}

	desc := orderValues(ValDescending, v, 0, idx, rng)
	for i := 1; i < len(desc); i++ {
		if desc[i-1] < desc[i] {
			t.Fatalf("descending order violated: %v", desc)
		}
	}
}

func TestOrderValuesMostSupported(t *testing.T) {
	x, _ := NewVariable(0, "x", 0, 1)
	y, _ := NewVariable(1, "y", 0, 1)
	for _, v := range []*Variable{x, y} {
		v.initLevels(1)
	}
	// x != y: x=0 is supported by y=1 only (1 tuple); x=1 supported by y=0
	// only (1 tuple) too, so this constraint alone ties. Add a second
	// constraint that only involves x=1 feasibly to break the tie in
	// x's support counts.
	cs := []Constraint{
		NewLinearConstraint(0, 0, 1, 1, -1, true, RelNeq, 0),
		NewLinearConstraint(1, 0, 1, 0, 0, false, RelGreaterEq, 1), // x >= 1
	}
	idx := buildIncidenceIndex([]*Variable{x, y}, cs)
	ordered := orderValues(ValMostSupported, x, 0, idx, rand.New(rand.NewSource(1)))
	if ordered[0] != 1 {
		t.Fatalf("expected value 1 (higher support) first, got %v", ordered)
	}
}
