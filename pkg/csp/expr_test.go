package csp

import "testing"

func TestAffineExprAddAndMulConst(t *testing.T) {
	x := varExpr(0)
	y := varExpr(1)

	sum, err := x.Add(y)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	scaled := sum.MulConst(2).AddConst(3)
	// 2*(x+y) + 3 == 2x + 2y + 3
	if scaled.var1 != 0 || scaled.coef1 != 2 || scaled.var2 != 1 || scaled.coef2 != 2 || scaled.constant != 3 {
		t.Fatalf("unexpected normalized expression: %+v", scaled)
	}
}

func TestAffineExprSubSameVariableCancels(t *testing.T) {
	x := varExpr(0)
	diff, err := x.Sub(x)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if diff.coef1 != 0 || diff.hasVar2 {
		t.Fatalf("expected x-x to cancel to a constant 0, got %+v", diff)
	}
}

func TestAffineExprThirdVariableIsConfigError(t *testing.T) {
	x := varExpr(0)
	y := varExpr(1)
	z := varExpr(2)

	sum, err := x.Add(y)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	_, err = sum.Add(z)
	if err == nil {
		t.Fatal("expected an error introducing a third distinct variable")
	}
	if _, ok := err.(*ConfigError); !ok {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
}

func TestToLinearConstraintMovesConstantsAcrossSides(t *testing.T) {
	x := varExpr(0)
	y := varExpr(1)
	// x + 2 == y - 3  =>  x - y == -5
	lhs := x.AddConst(2)
	rhs := y.AddConst(-3)
	lc, err := lhs.Eq(7, rhs)
	if err != nil {
		t.Fatalf("Eq: %v", err)
	}
	if lc.id != 7 {
		t.Fatalf("expected constraint id 7, got %d", lc.id)
	}
	if lc.var1 != 0 || lc.coef1 != 1 || lc.var2 != 1 || lc.coef2 != -1 || lc.rhs != -5 {
		t.Fatalf("unexpected constraint: %+v", lc)
	}
	if lc.op != RelEq {
		t.Fatalf("expected RelEq, got %v", lc.op)
	}
}

func TestToLinearConstraintSingleVariable(t *testing.T) {
	x := varExpr(0)
	lc, err := x.Geq(1, AffineExpr{constant: 4})
	if err != nil {
		t.Fatalf("Geq: %v", err)
	}
	if lc.hasVar2 {
		t.Fatalf("expected a single-variable constraint, got %+v", lc)
	}
	if lc.var1 != 0 || lc.coef1 != 1 || lc.rhs != 4 || lc.op != RelGreaterEq {
		t.Fatalf("unexpected constraint: %+v", lc)
	}
}
