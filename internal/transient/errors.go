package transient

import "errors"

// Domain errors for scheme construction and assembly.
var (
	// ErrNilProblem indicates a scheme was constructed without a problem.
	ErrNilProblem = errors.New("transient: problem is nil")

	// ErrNoTerms indicates an empty discretization term sequence.
	ErrNoTerms = errors.New("transient: discretization term sequence is empty")

	// ErrNoInitial indicates an empty initial condition.
	ErrNoInitial = errors.New("transient: initial condition is empty")
)
