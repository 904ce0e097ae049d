package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind classifies why a request did not produce a normal response.
// See spec §7.
type Kind int

const (
	// BadInput means the request itself is malformed; the solver is never
	// invoked.
	BadInput Kind = iota
	// ModelTrivial means no candidate (worker, task) pair exists at all.
	ModelTrivial
	// SolverInfeasible means the solver proved no feasible solution exists.
	SolverInfeasible
	// SolverTimeoutNoIncumbent means the solve budget elapsed before any
	// feasible solution was found.
	SolverTimeoutNoIncumbent
	// InternalFault means the solver or reconstruction raised unexpectedly.
	InternalFault
)

func (k Kind) String() string {
	switch k {
	case BadInput:
		return "bad_input"
	case ModelTrivial:
		return "model_trivial"
	case SolverInfeasible:
		return "solver_infeasible"
	case SolverTimeoutNoIncumbent:
		return "solver_timeout_no_incumbent"
	case InternalFault:
		return "internal_fault"
	default:
		return "unknown"
	}
}

// Error is the typed error surfaced at the Optimize boundary. Only
// InternalFault carries a FaultID; the full internal detail for a fault is
// logged separately and never crosses the boundary (spec §7).
type Error struct {
	Kind    Kind
	Message string
	FaultID string
}

func (e *Error) Error() string {
	if e.FaultID != "" {
		return fmt.Sprintf("%s: %s (fault %s)", e.Kind, e.Message, e.FaultID)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewBadInput builds a BadInput error.
func NewBadInput(format string, args ...any) *Error {
	return &Error{Kind: BadInput, Message: fmt.Sprintf(format, args...)}
}

// NewModelTrivial builds a ModelTrivial error.
func NewModelTrivial(format string, args ...any) *Error {
	return &Error{Kind: ModelTrivial, Message: fmt.Sprintf(format, args...)}
}

// NewSolverInfeasible builds a SolverInfeasible error.
func NewSolverInfeasible(message string) *Error {
	return &Error{Kind: SolverInfeasible, Message: message}
}

// NewSolverTimeoutNoIncumbent builds a SolverTimeoutNoIncumbent error.
func NewSolverTimeoutNoIncumbent(budget time.Duration) *Error {
	return &Error{
		Kind:    SolverTimeoutNoIncumbent,
		Message: fmt.Sprintf("no feasible solution found within the %s solve budget", budget),
	}
}

// NewInternalFault mints a fresh opaque fault identifier for an unexpected
// failure. The caller is expected to log cause with the same FaultID before
// returning this error.
func NewInternalFault(cause error) *Error {
	return &Error{
		Kind:    InternalFault,
		Message: "an internal error occurred while optimizing the request",
		FaultID: uuid.NewString(),
	}
}
