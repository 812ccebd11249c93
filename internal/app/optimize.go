// Package app defines the use-case boundary: requests, responses, and the
// typed error taxonomy the service layer returns, independent of how a
// caller (CLI, future RPC surface) invokes it.
package app

// OptimizeRequest names the two input files a single optimization run
// needs.
type OptimizeRequest struct {
	JobPath      string
	DefaultsPath string
}

// ScheduleRow is one row of the consolidated schedule: a contiguous
// placement of one period at one location.
type ScheduleRow struct {
	ProjectID string
	PeriodID  string
	// PeriodSeq is the period's per-project sequence index, the bare
	// counter PeriodID combines with ProjectID to form "{project}_{seq}".
	PeriodSeq int
	Location  string
	StartDate string
	EndDate   string
}

// OptimizeResponse carries the consolidated schedule and the objective
// value computed from the solved variables.
type OptimizeResponse struct {
	Schedule       []ScheduleRow
	ObjectiveValue float64
	ProjectCount   int
	MovedCount     int
}

// OptimizeErrorCode classifies why an optimization run did not produce a
// schedule.
type OptimizeErrorCode string

const (
	// OptimizeErrInvalidInput marks malformed or semantically invalid
	// input: unparseable JSON, unknown location references, inverted
	// date ranges, negative dimensions.
	OptimizeErrInvalidInput OptimizeErrorCode = "INVALID_INPUT"
	// OptimizeErrSolverInfeasible marks a well-formed model with no
	// feasible assignment.
	OptimizeErrSolverInfeasible OptimizeErrorCode = "SOLVER_INFEASIBLE"
	// OptimizeErrSolverTimeout marks a solve that did not finish within
	// its deadline without proving infeasibility or optimality.
	OptimizeErrSolverTimeout OptimizeErrorCode = "SOLVER_TIMEOUT"
	// OptimizeErrSolverError marks any other solver failure.
	OptimizeErrSolverError OptimizeErrorCode = "SOLVER_ERROR"
)

// OptimizeError is the typed error a failed optimization run returns.
type OptimizeError struct {
	Code    OptimizeErrorCode
	Message string
}

func (e *OptimizeError) Error() string {
	return string(e.Code) + ": " + e.Message
}
