package csp

import "fmt"

// Programming errors: they indicate a bug in this package's own
// invariant maintenance (a caller can never trigger them through the
// public API), so they are panicked rather than returned. See
// ConfigError for the caller-facing counterpart.
var (
	// ErrValueNotPresent is raised by Variable.Remove and
	// Variable.RestrictTo when the value is not live in the domain's
	// current prefix at the given level.
	ErrValueNotPresent = fmt.Errorf("csp: value not present in domain at this level")

	// ErrVariableNotInScope is raised when a constraint is asked to
	// propagate around a variable outside its scope.
	ErrVariableNotInScope = fmt.Errorf("csp: variable not in constraint scope")

	// ErrUnassignedVariable is raised when propagation is invoked for a
	// variable that does not yet have a committed assignment.
	ErrUnassignedVariable = fmt.Errorf("csp: variable has no assigned value")
)

// ConfigError reports a caller-facing configuration mistake: an invalid
// heuristic or look-ahead selection, an unknown linear relational
// operator, inverted domain bounds, or an AffineExpr spanning more than
// two distinct variables. Configuration errors are returned from the API
// call that caused them; they are never panicked.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("csp: invalid %s: %s", e.Field, e.Msg)
}

func newConfigError(field, msg string) *ConfigError {
	return &ConfigError{Field: field, Msg: msg}
}
