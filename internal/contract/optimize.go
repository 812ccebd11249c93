// Package contract re-exports the app package's use-case types under a
// stable name, the way cmd/ and any future external caller should import
// them.
package contract

import "github.com/alexanderramin/drydock/internal/app"

type OptimizeRequest = app.OptimizeRequest

type ScheduleRow = app.ScheduleRow

type OptimizeResponse = app.OptimizeResponse

type OptimizeErrorCode = app.OptimizeErrorCode

const (
	OptimizeErrInvalidInput     OptimizeErrorCode = app.OptimizeErrInvalidInput
	OptimizeErrSolverInfeasible OptimizeErrorCode = app.OptimizeErrSolverInfeasible
	OptimizeErrSolverTimeout    OptimizeErrorCode = app.OptimizeErrSolverTimeout
	OptimizeErrSolverError      OptimizeErrorCode = app.OptimizeErrSolverError
)

type OptimizeError = app.OptimizeError

type OptimizeUseCase = app.OptimizeUseCase
