package model

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/drydock/internal/domain"
	"github.com/alexanderramin/drydock/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuild_Invariants_CapacityAndAssignmentAndMovementCap generates small
// random AFLOAT instances and checks the solved assignment never double-books
// a period onto two locations the same day, never overloads a quay, and never
// exceeds a project's movement budget.
func TestBuild_Invariants_CapacityAndAssignmentAndMovementCap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	solved := 0
	for trial := 0; trial < 25; trial++ {
		horizon := 3 + rng.Intn(3) // 3..5
		locNames := []string{"SUR", "NORTE"}
		if rng.Intn(2) == 0 {
			locNames = locNames[:1]
		}
		locs := make([]domain.Location, len(locNames))
		for i, name := range locNames {
			locs[i] = domain.Location{Name: name, Kind: domain.Quay, Length: float64(80 + rng.Intn(70))}
		}
		locations, err := domain.NewLocationSet(locs)
		require.NoError(t, err)

		nProjects := 1 + rng.Intn(2) // 1..2
		projects := make(map[string]domain.Project, nProjects)
		periods := make([]domain.Period, 0, nProjects)
		billing := make(map[string]float64, nProjects)
		maxMovements := 1 + rng.Intn(3)

		for i := 0; i < nProjects; i++ {
			id := "P" + string(rune('A'+i))
			eslora := float64(40 + rng.Intn(60))
			rate := float64(500 + rng.Intn(1000))
			projects[id] = domain.Project{ID: id, Eslora: eslora, Billing: &rate, ToOptimize: true}
			billing[id] = rate

			p := domain.Period{Key: domain.PeriodKey{ProjectID: id}, Type: domain.Afloat, FirstDay: 0, LastDay: horizon, Declared: domain.UnassignedArea()}
			p.Days = rangeInts(0, horizon)
			p.Candidates = locNames
			periods = append(periods, p)
		}

		in := Inputs{
			Periods:      periods,
			Projects:     projects,
			Locations:    locations,
			BillingDaily: billing,
			Config: domain.Config{
				MovementPenalty:          float64(1 + rng.Intn(20)),
				MaxMovementsPerProject:   maxMovements,
				MaxSynchroliftUsesPerDay: 1,
			},
			Horizon: horizon,
		}

		bb := solver.NewBranchAndBound()
		built := Build(bb, in)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		status, err := bb.Solve(ctx, 2*time.Second)
		cancel()
		require.NoError(t, err, "trial %d", trial)
		if status != solver.StatusOptimal {
			continue
		}
		solved++

		// Invariant 1: at most one location chosen per (project, day).
		for _, p := range periods {
			pid := p.Key.ID()
			for _, d := range p.Days {
				count := 0
				for _, loc := range p.Candidates {
					v, ok := built.X[XKey{PeriodID: pid, Day: d, Location: loc}]
					if !ok {
						continue
					}
					val, verr := bb.ValueOf(v)
					require.NoError(t, verr)
					count += val
				}
				assert.LessOrEqual(t, count, 1, "trial %d: period %s day %d assigned to more than one location", trial, pid, d)
			}
		}

		// Invariant 2: per (day, location) total eslora never exceeds length.
		for d := 0; d <= horizon; d++ {
			for _, loc := range locNames {
				location, _ := locations.Lookup(loc)
				total := 0.0
				for _, p := range periods {
					project := projects[p.Key.ProjectID]
					pid := p.Key.ID()
					v, ok := built.X[XKey{PeriodID: pid, Day: d, Location: loc}]
					if !ok {
						continue
					}
					val, verr := bb.ValueOf(v)
					require.NoError(t, verr)
					total += float64(val) * project.Eslora
				}
				assert.LessOrEqual(t, total, location.Length, "trial %d: day %d location %s overloaded", trial, d, loc)
			}
		}

		// Invariant 3: total movements per project never exceed the budget.
		for id := range projects {
			moved := 0
			for key, v := range built.M {
				if key.PeriodID != id+"_0" {
					continue
				}
				val, verr := bb.ValueOf(v)
				require.NoError(t, verr)
				moved += val
			}
			assert.LessOrEqual(t, moved, maxMovements, "trial %d: project %s exceeded its movement budget", trial, id)
		}
	}

	assert.Greater(t, solved, 0, "at least one random trial should reach OPTIMAL")
}

// TestBuild_SynchroliftCapForcesUnassigned mirrors the literal synchrolift
// scenario: an ASHORE project needs one lift at the start of its period, but
// a committed project already used the day's only lift, so the solver must
// refuse to place it rather than exceed the daily cap.
func TestBuild_SynchroliftCapForcesUnassigned(t *testing.T) {
	locations, err := domain.NewLocationSet([]domain.Location{
		{Name: "CALLE1", Kind: domain.Street, Length: 100, Width: 30},
	})
	require.NoError(t, err)

	rate := 900.0
	projects := map[string]domain.Project{
		"PRO5": {ID: "PRO5", Eslora: 60, Billing: &rate, ToOptimize: true},
	}
	pro5 := domain.Period{Key: domain.PeriodKey{ProjectID: "PRO5"}, Type: domain.Ashore, FirstDay: 0, LastDay: 2, Declared: domain.UnassignedArea()}
	pro5.Days = rangeInts(0, 2)
	pro5.Candidates = []string{"CALLE1"}

	in := Inputs{
		Periods:              []domain.Period{pro5},
		Projects:             projects,
		Locations:            locations,
		BillingDaily:         map[string]float64{"PRO5": rate},
		CommittedSynchrolift: map[int]int{0: 1},
		Config: domain.Config{
			MovementPenalty:          10,
			MaxMovementsPerProject:   5,
			MaxSynchroliftUsesPerDay: 1,
		},
		Horizon: 2,
	}

	bb := solver.NewBranchAndBound()
	built := Build(bb, in)

	status, err := bb.Solve(context.Background(), 2*time.Second)
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, status)

	y, err := bb.ValueOf(built.Y["PRO5"])
	require.NoError(t, err)
	assert.Equal(t, 0, y, "day 0's lift is already fully used by a committed project, so PRO5 cannot be placed")
}
