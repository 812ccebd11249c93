package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/drydock/internal/app"
	"github.com/alexanderramin/drydock/internal/core/billing"
	"github.com/alexanderramin/drydock/internal/core/consolidate"
	"github.com/alexanderramin/drydock/internal/core/continuity"
	"github.com/alexanderramin/drydock/internal/core/feasible"
	"github.com/alexanderramin/drydock/internal/core/historical"
	"github.com/alexanderramin/drydock/internal/core/model"
	"github.com/alexanderramin/drydock/internal/core/normalize"
	"github.com/alexanderramin/drydock/internal/core/synchrolift"
	"github.com/alexanderramin/drydock/internal/domain"
	"github.com/alexanderramin/drydock/internal/ingest"
	"github.com/alexanderramin/drydock/internal/paramstore"
	"github.com/alexanderramin/drydock/internal/solver"
	"github.com/google/uuid"
)

// defaultSolverTimeout bounds the single blocking call in the pipeline
// (the only blocking call gets a deadline; a timeout is treated as
// TIME_LIMIT, not as success).
const defaultSolverTimeout = 60 * time.Second

type optimizeService struct {
	observer     PipelineObserver
	configLogger *slog.Logger
	timeout      time.Duration
}

// NewOptimizeService builds the orchestrator wiring every pipeline stage
// from ingestion through consolidation. observers may be empty; the first
// non-nil one is used, otherwise pipeline stages are unobserved.
func NewOptimizeService(observers ...PipelineObserver) app.OptimizeUseCase {
	return &optimizeService{
		observer:     pipelineObserverOrNoop(observers),
		configLogger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		timeout:      defaultSolverTimeout,
	}
}

func (s *optimizeService) Optimize(ctx context.Context, req app.OptimizeRequest) (*app.OptimizeResponse, error) {
	observer := withRunID(s.observer, uuid.NewString())

	schema, err := ingest.LoadJobSchema(req.JobPath)
	if err != nil {
		return nil, invalidInput("loading job file: %v", err)
	}
	if errs := ingest.ValidateJobSchema(schema); len(errs) > 0 {
		return nil, invalidInput("job file validation: %v", errs[0])
	}

	job, err := ingest.Convert(schema)
	if err != nil {
		return nil, translateErr(err)
	}

	var cfg domain.Config
	err = runStage(ctx, observer, "paramstore", nil, func() error {
		loaded, loadErr := paramstore.Load(req.DefaultsPath, job.ConfigOverrides, s.configLogger)
		if loadErr != nil {
			return loadErr
		}
		cfg = loaded
		return nil
	})
	if err != nil {
		return nil, invalidInput("loading defaults file: %v", err)
	}

	toOptimize := ingest.ToOptimizeSet(job.Projects)
	knownLocations := ingest.KnownLocationNames(job.Locations)

	var periods []domain.Period
	err = runStage(ctx, observer, "normalize", map[string]any{"raw_period_count": len(job.RawPeriods)}, func() error {
		normalized, normErr := normalize.Normalize(job.RawPeriods, job.Epoch, toOptimize, knownLocations)
		if normErr != nil {
			return normErr
		}
		periods = normalized
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}

	horizon := computeHorizon(periods)

	var expanded []domain.Period
	err = runStage(ctx, observer, "feasibility_expand", map[string]any{"horizon": horizon}, func() error {
		e, expErr := feasible.Expand(periods, job.Projects, job.Locations, job.Synchrolift, horizon)
		if expErr != nil {
			return expErr
		}
		expanded = e
		return nil
	})
	if err != nil {
		return nil, translateErr(err)
	}

	committedLength := historical.CommittedLength(expanded, job.Projects, job.Locations, toOptimize)
	priorMovements := historical.PriorMovements(expanded, toOptimize, cfg.MaxMovementsPerProject)
	committedLift := synchrolift.Committed(expanded, toOptimize, cfg.MaxSynchroliftUsesPerDay)
	previousArea := continuity.PreviousArea(expanded, toOptimize)

	firstDay, lastDay := billing.Span(expanded)
	billingDaily := billing.Daily(job.Projects, firstDay, lastDay, cfg.MinDailyBilling)

	modelIn := model.Inputs{
		Periods:              expanded,
		Projects:             job.Projects,
		Locations:            job.Locations,
		CommittedLength:      convertCommittedLength(committedLength),
		PriorMovements:       priorMovements,
		CommittedSynchrolift: committedLift,
		PreviousArea:         previousArea,
		BillingDaily:         billingDaily,
		Config:               cfg,
		Horizon:              horizon,
	}

	bb := solver.NewBranchAndBound()
	var built *model.Built
	_ = runStage(ctx, observer, "model_build", map[string]any{"period_count": len(expanded)}, func() error {
		built = model.Build(bb, modelIn)
		return nil
	})

	var status solver.Status
	err = runStage(ctx, observer, "solve", nil, func() error {
		st, solveErr := bb.Solve(ctx, s.timeout)
		status = st
		return solveErr
	})
	if err != nil {
		return nil, &app.OptimizeError{Code: app.OptimizeErrSolverError, Message: err.Error()}
	}
	if status != solver.StatusOptimal {
		return nil, solverStatusError(status)
	}

	var rows []consolidate.Row
	err = runStage(ctx, observer, "consolidate", nil, func() error {
		r, consErr := consolidate.Consolidate(bb, built, job.Projects, job.Epoch)
		if consErr != nil {
			return consErr
		}
		rows = r
		return nil
	})
	if err != nil {
		return nil, &app.OptimizeError{Code: app.OptimizeErrSolverError, Message: err.Error()}
	}

	objective, moved := objectiveAndMovedCount(bb, built, billingDaily, cfg.MovementPenalty)

	return &app.OptimizeResponse{
		Schedule:       toScheduleRows(rows),
		ObjectiveValue: objective,
		ProjectCount:   len(toOptimize),
		MovedCount:     moved,
	}, nil
}

func invalidInput(format string, args ...any) error {
	return &app.OptimizeError{Code: app.OptimizeErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// translateErr maps a domain-level InvalidInputError into the public
// error taxonomy. Any other error is treated as an internal solver error
// since only the preprocessing stages return domain errors.
func translateErr(err error) error {
	if domain.IsInvalidInput(err) {
		return &app.OptimizeError{Code: app.OptimizeErrInvalidInput, Message: err.Error()}
	}
	return &app.OptimizeError{Code: app.OptimizeErrSolverError, Message: err.Error()}
}

func solverStatusError(status solver.Status) error {
	switch status {
	case solver.StatusInfeasible:
		return &app.OptimizeError{Code: app.OptimizeErrSolverInfeasible, Message: "no feasible assignment satisfies every constraint"}
	case solver.StatusTimeLimit:
		return &app.OptimizeError{Code: app.OptimizeErrSolverTimeout, Message: "solver did not prove optimality within the configured time"}
	default:
		return &app.OptimizeError{Code: app.OptimizeErrSolverError, Message: "solver terminated with status " + status.String()}
	}
}

// computeHorizon derives H, the inclusive upper bound of the planning
// horizon, as the latest day any period reaches (the original job format
// computes it as max(fecha_fin) across all periods).
func computeHorizon(periods []domain.Period) int {
	horizon := 0
	for _, p := range periods {
		if p.LastDay > horizon {
			horizon = p.LastDay
		}
	}
	return horizon
}

func convertCommittedLength(in map[historical.LengthKey]float64) map[model.DayLocation]float64 {
	out := make(map[model.DayLocation]float64, len(in))
	for k, v := range in {
		out[model.DayLocation{Day: k.Day, Location: k.Location}] = v
	}
	return out
}

func toScheduleRows(rows []consolidate.Row) []app.ScheduleRow {
	out := make([]app.ScheduleRow, len(rows))
	for i, r := range rows {
		out[i] = app.ScheduleRow{
			ProjectID: r.ProjectID,
			PeriodID:  r.PeriodID,
			PeriodSeq: r.PeriodSeq,
			Location:  r.Location,
			StartDate: r.StartDate.Format("2006-01-02"),
			EndDate:   r.EndDate.Format("2006-01-02"),
		}
	}
	return out
}

// objectiveAndMovedCount recomputes the solved objective value and total
// movement count directly from the solved variables, independent of
// whatever internal bookkeeping the solver kept.
func objectiveAndMovedCount(m solver.Model, b *model.Built, billingDaily map[string]float64, penalty float64) (float64, int) {
	var objective float64
	projectOfPeriod := make(map[string]string)
	for _, p := range b.Periods {
		projectOfPeriod[p.Key.ID()] = p.Key.ProjectID
	}

	for key, v := range b.X {
		val, err := m.ValueOf(v)
		if err != nil || val != 1 {
			continue
		}
		rate, ok := billingDaily[projectOfPeriod[key.PeriodID]]
		if !ok {
			continue
		}
		objective += rate
	}

	moved := 0
	for _, v := range b.M {
		val, err := m.ValueOf(v)
		if err != nil || val != 1 {
			continue
		}
		moved++
	}
	objective -= penalty * float64(moved)

	return objective, moved
}
