// Package model implements the Model Builder: it
// instantiates the decision variables x, y, m, s, the objective, and
// constraint families C1-C8 against the solver-agnostic Model interface
// (internal/solver).
package model

import (
	"sort"

	"github.com/alexanderramin/drydock/internal/domain"
	"github.com/alexanderramin/drydock/internal/solver"
)

// DayLocation indexes committed occupied length (the output of
// internal/core/historical.CommittedLength, re-keyed without importing
// that package to keep model solver-agnostic and dependency-light).
type DayLocation struct {
	Day      int
	Location string
}

// XKey identifies an x[p,d,ℓ] variable.
type XKey struct {
	PeriodID string
	Day      int
	Location string
}

// MKey identifies an m[p,d] variable.
type MKey struct {
	PeriodID string
	Day      int
}

// SKey identifies an s[P,d] variable.
type SKey struct {
	ProjectID string
	Day       int
}

// Built holds every variable handle the Result Consolidator needs to read
// back the solved assignment.
type Built struct {
	X map[XKey]solver.Var
	Y map[string]solver.Var
	M map[MKey]solver.Var
	S map[SKey]solver.Var

	// Periods is the period table the variables were built against, kept
	// alongside for the Result Consolidator.
	Periods []domain.Period
}

// Inputs bundles every constant table the Model Builder consumes — the
// output of every preprocessing stage that precedes it in the pipeline.
type Inputs struct {
	Periods              []domain.Period
	Projects             map[string]domain.Project
	Locations            domain.LocationSet
	CommittedLength      map[DayLocation]float64
	PriorMovements       map[string]int
	CommittedSynchrolift map[int]int
	PreviousArea         map[string]string // period id -> area name
	BillingDaily         map[string]float64
	Config               domain.Config
	Horizon              int
}

// Build instantiates variables, objective, and constraints on m against
// in, and returns the variable handles for later readback.
func Build(m solver.Model, in Inputs) *Built {
	b := &Built{
		X: make(map[XKey]solver.Var),
		Y: make(map[string]solver.Var),
		M: make(map[MKey]solver.Var),
		S: make(map[SKey]solver.Var),
	}

	periods := sortedPeriods(in.Periods)
	b.Periods = periods

	optimizableProjectIDs := optimizableProjects(in.Projects)
	for _, id := range optimizableProjectIDs {
		b.Y[id] = m.AddBinaryVariable("y_" + id)
	}

	mByProject := make(map[string][]solver.Var)

	for _, p := range periods {
		project, ok := in.Projects[p.Key.ProjectID]
		if !ok || !project.ToOptimize {
			continue
		}
		pid := p.Key.ID()

		for _, d := range p.Days {
			for _, loc := range p.Candidates {
				key := XKey{PeriodID: pid, Day: d, Location: loc}
				b.X[key] = m.AddBinaryVariable("x_" + pid)
			}
		}

		if len(p.Candidates) >= 2 && len(p.Days) > 0 {
			for _, d := range p.Days[1:] {
				key := MKey{PeriodID: pid, Day: d}
				v := m.AddBinaryVariable("m_" + pid)
				b.M[key] = v
				mByProject[p.Key.ProjectID] = append(mByProject[p.Key.ProjectID], v)
			}
		}

		if _, ok := in.PreviousArea[pid]; ok {
			key := MKey{PeriodID: pid, Day: 0}
			if _, exists := b.M[key]; !exists {
				v := m.AddBinaryVariable("m0_" + pid)
				b.M[key] = v
				mByProject[p.Key.ProjectID] = append(mByProject[p.Key.ProjectID], v)
			}
		}
	}

	for _, p := range periods {
		project, ok := in.Projects[p.Key.ProjectID]
		if !ok || !project.ToOptimize || p.Type != domain.Ashore || len(p.Days) == 0 {
			continue
		}
		for _, d := range []int{p.Days[0], p.Days[len(p.Days)-1]} {
			key := SKey{ProjectID: p.Key.ProjectID, Day: d}
			if _, exists := b.S[key]; exists {
				continue
			}
			b.S[key] = m.AddBinaryVariable("s_" + key.ProjectID)
		}
	}

	setObjective(m, b, periods, in)
	addAssignmentConstraints(m, b, periods, in.Projects)
	addCapacityConstraints(m, b, periods, in)
	addMovementConstraints(m, b, periods)
	addContinuityConstraints(m, b, in.PreviousArea)
	addMovementCapConstraints(m, mByProject, in.PriorMovements, in.Config.MaxMovementsPerProject, optimizableProjectIDs)
	addSynchroliftConstraints(m, b, optimizableProjectIDs, in.Horizon, in.CommittedSynchrolift, in.Config.MaxSynchroliftUsesPerDay)

	return b
}

func sortedPeriods(periods []domain.Period) []domain.Period {
	out := make([]domain.Period, len(periods))
	copy(out, periods)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Key.ProjectID != out[j].Key.ProjectID {
			return out[i].Key.ProjectID < out[j].Key.ProjectID
		}
		return out[i].Key.Seq < out[j].Key.Seq
	})
	return out
}

func optimizableProjects(projects map[string]domain.Project) []string {
	ids := make([]string, 0, len(projects))
	for id, p := range projects {
		if p.ToOptimize {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// setObjective builds the objective: Σ x·billing_daily −
// movement_penalty · Σ m.
func setObjective(m solver.Model, b *Built, periods []domain.Period, in Inputs) {
	var terms []solver.Term
	for _, p := range periods {
		rate, ok := in.BillingDaily[p.Key.ProjectID]
		if !ok {
			continue
		}
		pid := p.Key.ID()
		for _, d := range p.Days {
			for _, loc := range p.Candidates {
				v, exists := b.X[XKey{PeriodID: pid, Day: d, Location: loc}]
				if !exists {
					continue
				}
				terms = append(terms, solver.Term{Var: v, Coef: rate})
			}
		}
	}
	for _, v := range b.M {
		terms = append(terms, solver.Term{Var: v, Coef: -in.Config.MovementPenalty})
	}
	m.SetObjective(terms)
}

// addAssignmentConstraints implements C1: Σℓ x[p,d,ℓ] = y[P].
func addAssignmentConstraints(m solver.Model, b *Built, periods []domain.Period, projects map[string]domain.Project) {
	for _, p := range periods {
		project, ok := projects[p.Key.ProjectID]
		if !ok || !project.ToOptimize {
			continue
		}
		y, ok := b.Y[p.Key.ProjectID]
		if !ok {
			continue
		}
		pid := p.Key.ID()
		for _, d := range p.Days {
			var lhs []solver.Term
			for _, loc := range p.Candidates {
				lhs = append(lhs, solver.Term{Var: b.X[XKey{PeriodID: pid, Day: d, Location: loc}], Coef: 1})
			}
			lhs = append(lhs, solver.Term{Var: y, Coef: -1})
			m.AddLinearConstraint(lhs, solver.EQ, 0, "assignment_"+pid)
		}
	}
}

// addCapacityConstraints implements C2: optimized load + committed load ≤
// location length, for every (location, day) in the horizon.
func addCapacityConstraints(m solver.Model, b *Built, periods []domain.Period, in Inputs) {
	byLocation := make(map[string][]domain.Period)
	for _, p := range periods {
		project, ok := in.Projects[p.Key.ProjectID]
		if !ok || !project.ToOptimize {
			continue
		}
		for _, loc := range p.Candidates {
			byLocation[loc] = append(byLocation[loc], p)
		}
	}

	locationNames := make([]string, 0, len(byLocation))
	for name := range byLocation {
		locationNames = append(locationNames, name)
	}
	sort.Strings(locationNames)

	for _, name := range locationNames {
		loc, ok := in.Locations.Lookup(name)
		if !ok {
			continue
		}
		for d := 0; d <= in.Horizon; d++ {
			var lhs []solver.Term
			for _, p := range byLocation[name] {
				project := in.Projects[p.Key.ProjectID]
				pid := p.Key.ID()
				key := XKey{PeriodID: pid, Day: d, Location: name}
				v, exists := b.X[key]
				if !exists {
					continue
				}
				lhs = append(lhs, solver.Term{Var: v, Coef: project.Eslora})
			}
			if len(lhs) == 0 {
				continue
			}
			committed := in.CommittedLength[DayLocation{Day: d, Location: name}]
			m.AddLinearConstraint(lhs, solver.LE, loc.Length-committed, "capacity_"+name)
		}
	}
}

// addMovementConstraints implements C3 and C4: m[p,d] pinned to 1 iff the
// chosen location changed between d-1 and d, for multi-candidate periods.
func addMovementConstraints(m solver.Model, b *Built, periods []domain.Period) {
	for _, p := range periods {
		if len(p.Candidates) < 2 || len(p.Days) < 2 {
			continue
		}
		pid := p.Key.ID()
		for _, d := range p.Days[1:] {
			mv, ok := b.M[MKey{PeriodID: pid, Day: d}]
			if !ok {
				continue
			}
			for _, loc := range p.Candidates {
				xd, okd := b.X[XKey{PeriodID: pid, Day: d, Location: loc}]
				xPrev, okPrev := b.X[XKey{PeriodID: pid, Day: d - 1, Location: loc}]
				if !okd || !okPrev {
					continue
				}
				// C3: m ≥ x[d] − x[d-1]
				m.AddLinearConstraint([]solver.Term{
					{Var: mv, Coef: 1}, {Var: xd, Coef: -1}, {Var: xPrev, Coef: 1},
				}, solver.GE, 0, "movement_lower_"+pid)
				// C4: m ≤ 2 − x[d] − x[d-1]
				m.AddLinearConstraint([]solver.Term{
					{Var: mv, Coef: 1}, {Var: xd, Coef: 1}, {Var: xPrev, Coef: 1},
				}, solver.LE, 2, "movement_upper_"+pid)
			}
		}
	}
}

// addContinuityConstraints implements C5: m[p,0] ≥ 1 − x[p,0,previous_area].
func addContinuityConstraints(m solver.Model, b *Built, previousArea map[string]string) {
	for pid, area := range previousArea {
		mv, ok := b.M[MKey{PeriodID: pid, Day: 0}]
		if !ok {
			continue
		}
		lhs := []solver.Term{{Var: mv, Coef: 1}}
		if xv, ok := b.X[XKey{PeriodID: pid, Day: 0, Location: area}]; ok {
			lhs = append(lhs, solver.Term{Var: xv, Coef: 1})
		}
		m.AddLinearConstraint(lhs, solver.GE, 1, "continuity_"+pid)
	}
}

// addMovementCapConstraints implements C6: per-project movement budget.
func addMovementCapConstraints(m solver.Model, mByProject map[string][]solver.Var, priorMovements map[string]int, cap int, optimizableProjectIDs []string) {
	for _, projectID := range optimizableProjectIDs {
		vars := mByProject[projectID]
		lhs := make([]solver.Term, 0, len(vars))
		for _, v := range vars {
			lhs = append(lhs, solver.Term{Var: v, Coef: 1})
		}
		if len(lhs) == 0 {
			continue
		}
		budget := float64(cap - priorMovements[projectID])
		m.AddLinearConstraint(lhs, solver.LE, budget, "movement_cap_"+projectID)
	}
}

// addSynchroliftConstraints implements C7 (linkage) and C8 (capacity).
func addSynchroliftConstraints(m solver.Model, b *Built, optimizableProjectIDs []string, horizon int, committed map[int]int, maxPerDay int) {
	byDay := make(map[int][]solver.Var)
	for key, v := range b.S {
		byDay[key.Day] = append(byDay[key.Day], v)
		y, ok := b.Y[key.ProjectID]
		if !ok {
			continue
		}
		m.AddLinearConstraint([]solver.Term{
			{Var: v, Coef: 1}, {Var: y, Coef: -1},
		}, solver.EQ, 0, "synchrolift_link_"+key.ProjectID)
	}

	for d := 0; d <= horizon; d++ {
		vars := byDay[d]
		if len(vars) == 0 {
			continue
		}
		lhs := make([]solver.Term, 0, len(vars))
		for _, v := range vars {
			lhs = append(lhs, solver.Term{Var: v, Coef: 1})
		}
		m.AddLinearConstraint(lhs, solver.LE, float64(maxPerDay-committed[d]), "synchrolift_capacity")
	}
}

