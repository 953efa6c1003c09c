package csp

// AffineExpr is a builder for affine expressions over at most two
// distinct variables: coef1*var1 + coef2*var2 + constant, expressed as
// a fluent builder since Go has no operator overloading.
//
// A fresh AffineExpr for a single variable is produced by CSP.VarExpr;
// Add/Sub/MulConst/AddConst extend it, and the comparison methods
// (Eq/Neq/Lt/Leq/Gt/Geq) close it into a LinearConstraint. Introducing a
// third distinct variable is a configuration error returned from Add/Sub
// (and so from the comparison methods, which subtract), never a panic,
// since it is caller-reachable through the public API.
//
// Coefficients and the constant term are real-valued; only the
// variable ids stay integers.
type AffineExpr struct {
	var1    int
	coef1   float64
	var2    int
	coef2   float64
	hasVar2 bool

	constant float64
}

// varExpr returns the trivial affine expression 1*varID.
func varExpr(varID int) AffineExpr {
	return AffineExpr{var1: varID, coef1: 1}
}

func (e AffineExpr) hasVar(id int) bool {
	return e.var1 == id || (e.hasVar2 && e.var2 == id)
}

// Add returns e + other, normalizing to at most two distinct variables.
func (e AffineExpr) Add(other AffineExpr) (AffineExpr, error) {
	return e.combine(other, 1)
}

// Sub returns e - other, normalizing to at most two distinct variables.
func (e AffineExpr) Sub(other AffineExpr) (AffineExpr, error) {
	return e.combine(other, -1)
}

func (e AffineExpr) combine(other AffineExpr, sign float64) (AffineExpr, error) {
	out := e
	addTerm := func(varID int, coef float64) error {
		if coef == 0 {
			return nil
		}
		switch {
		case out.var1 == varID:
			out.coef1 += sign * coef
		case out.hasVar2 && out.var2 == varID:
			out.coef2 += sign * coef
		case !out.hasVar2:
			out.var2 = varID
			out.coef2 = sign * coef
			out.hasVar2 = true
		default:
			return newConfigError("affine expression", "expression would span more than two distinct variables")
		}
		return nil
	}
	if err := addTerm(other.var1, other.coef1); err != nil {
		return AffineExpr{}, err
	}
	if other.hasVar2 {
		if err := addTerm(other.var2, other.coef2); err != nil {
			return AffineExpr{}, err
		}
	}
	out.constant += sign * other.constant
	return out, nil
}

// MulConst returns k*e.
func (e AffineExpr) MulConst(k float64) AffineExpr {
	out := e
	out.coef1 *= k
	out.coef2 *= k
	out.constant *= k
	return out
}

// AddConst returns e + k.
func (e AffineExpr) AddConst(k float64) AffineExpr {
	out := e
	out.constant += k
	return out
}

// toLinearConstraint closes e op rhsExpr into a LinearConstraint: moves
// every variable term onto the left and every constant onto the right.
func toLinearConstraint(id int, lhs AffineExpr, op RelOp, rhs AffineExpr) (*LinearConstraint, error) {
	diff, err := lhs.Sub(rhs)
	if err != nil {
		return nil, err
	}
	rhsVal := -diff.constant
	if !diff.hasVar2 {
		return NewLinearConstraint(id, diff.var1, diff.coef1, 0, 0, false, op, rhsVal), nil
	}
	return NewLinearConstraint(id, diff.var1, diff.coef1, diff.var2, diff.coef2, true, op, rhsVal), nil
}

// Eq, Neq, Lt, Leq, Gt, Geq build the relational constraint e <op> other.
// The caller supplies the constraint id; CSP.AddLinearConstraint does
// not use these helpers but calls toLinearConstraint with its next id.
func (e AffineExpr) Eq(id int, other AffineExpr) (*LinearConstraint, error) {
	return toLinearConstraint(id, e, RelEq, other)
}
func (e AffineExpr) Neq(id int, other AffineExpr) (*LinearConstraint, error) {
	return toLinearConstraint(id, e, RelNeq, other)
}
func (e AffineExpr) Lt(id int, other AffineExpr) (*LinearConstraint, error) {
	return toLinearConstraint(id, e, RelLess, other)
}
func (e AffineExpr) Leq(id int, other AffineExpr) (*LinearConstraint, error) {
	return toLinearConstraint(id, e, RelLessEq, other)
}
func (e AffineExpr) Gt(id int, other AffineExpr) (*LinearConstraint, error) {
	return toLinearConstraint(id, e, RelGreater, other)
}
func (e AffineExpr) Geq(id int, other AffineExpr) (*LinearConstraint, error) {
	return toLinearConstraint(id, e, RelGreaterEq, other)
}
