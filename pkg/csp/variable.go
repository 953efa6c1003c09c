package csp

import "fmt"

// Variable is a finite-domain variable identified by a dense integer id
// assigned in insertion order. Its working domain is an array holding a
// permutation of the initial domain, paired with a
// per-search-level size counter: the live values at level ℓ are the
// prefix values[0:currentSize[ℓ]]. Level -1 denotes the initial,
// unmodified domain and is always the full array regardless of search
// progress.
//
// Variable is the solver's trailed domain store: swap-to-
// tail removal keeps the array a permutation of the initial domain at
// every level, so restoration on backtrack is just restoring an index,
// never a set reconstruction.
type Variable struct {
	id   int
	name string

	dMin, dMax int

	values      []int // permutation of the initial domain [dMin, dMax]
	currentSize []int // currentSize[level] = count of live entries in the prefix
}

// NewVariable constructs a variable with the dense id and the closed
// initial domain [dMin, dMax]. Returns a ConfigError if dMin > dMax.
func NewVariable(id int, name string, dMin, dMax int) (*Variable, error) {
	if dMin > dMax {
		return nil, newConfigError("domain bounds", fmt.Sprintf("dMin (%d) > dMax (%d) for variable %q", dMin, dMax, name))
	}
	size := dMax - dMin + 1
	values := make([]int, size)
	for i := range values {
		values[i] = dMin + i
	}
	return &Variable{
		id:     id,
		name:   name,
		dMin:   dMin,
		dMax:   dMax,
		values: values,
	}, nil
}

// ID returns the variable's dense integer identifier.
func (v *Variable) ID() int { return v.id }

// Name returns the variable's human-readable name.
func (v *Variable) Name() string { return v.name }

func (v *Variable) String() string { return fmt.Sprintf("variable %s", v.name) }

// InitialSize returns the cardinality of the initial domain.
func (v *Variable) InitialSize() int { return len(v.values) }

// initLevels allocates the per-level size vector for a search with up to
// maxLevel searchable depths (levels run 0..maxLevel inclusive, since
// committing at depth ℓ pushes sizes into ℓ+1). Called once at the
// start of Solve(), with every level starting at the full domain size.
func (v *Variable) initLevels(maxLevel int) {
	v.currentSize = make([]int, maxLevel+1)
	for i := range v.currentSize {
		v.currentSize[i] = len(v.values)
	}
}

// Dom returns a read-only snapshot of the live values at the given
// level. Level -1 returns the full initial domain.
func (v *Variable) Dom(level int) []int {
	if level == -1 {
		out := make([]int, len(v.values))
		copy(out, v.values)
		return out
	}
	n := v.currentSize[level]
	out := make([]int, n)
	copy(out, v.values[:n])
	return out
}

// Size returns the number of live values at the given level.
func (v *Variable) Size(level int) int {
	if level == -1 {
		return len(v.values)
	}
	return v.currentSize[level]
}

// hasLive reports whether value is in the live prefix at level.
func (v *Variable) hasLive(value, level int) bool {
	n := v.currentSize[level]
	for i := 0; i < n; i++ {
		if v.values[i] == value {
			return true
		}
	}
	return false
}

// Remove removes value from the live domain at level by swapping it with
// the last live entry and shrinking the prefix. Panics
// with ErrValueNotPresent if the value is not live at this level — a
// programming error, not a caller-facing one (propagation only ever
// calls Remove with values it has already confirmed are live).
func (v *Variable) Remove(value, level int) {
	n := v.currentSize[level]
	idx := -1
	for i := 0; i < n; i++ {
		if v.values[i] == value {
			idx = i
			break
		}
	}
	if idx == -1 {
		panic(ErrValueNotPresent)
	}
	last := n - 1
	v.values[idx], v.values[last] = v.values[last], v.values[idx]
	v.currentSize[level] = last
}

// RestrictTo shrinks the live domain at level to the single value,
// swapping it to index 0. Panics with ErrValueNotPresent
// if value is not live at this level.
func (v *Variable) RestrictTo(value, level int) {
	n := v.currentSize[level]
	idx := -1
	for i := 0; i < n; i++ {
		if v.values[i] == value {
			idx = i
			break
		}
	}
	if idx == -1 {
		panic(ErrValueNotPresent)
	}
	v.values[idx], v.values[0] = v.values[0], v.values[idx]
	v.currentSize[level] = 1
}

// PushLevel copies the live size at level into level+1, the setup step
// run before committing a new assignment.
func (v *Variable) PushLevel(level int) {
	v.currentSize[level+1] = v.currentSize[level]
}

// ResetLevel undoes every removal made at level+1 by re-copying the size
// from level, run on every value retry.
func (v *Variable) ResetLevel(level int) {
	v.currentSize[level+1] = v.currentSize[level]
}

// IsAssigned reports whether the live domain at level has collapsed to
// exactly one value.
func (v *Variable) IsAssigned(level int) bool {
	return v.currentSize[level] == 1
}

// AssignedValue returns the sole live value at level. Panics with
// ErrUnassignedVariable if the domain has not collapsed to a singleton
// there — a caller asking for a committed value before one exists is a
// programming error, not something the public API can trigger.
func (v *Variable) AssignedValue(level int) int {
	if v.currentSize[level] != 1 {
		panic(ErrUnassignedVariable)
	}
	return v.values[0]
}
