package model

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/drydock/internal/domain"
	"github.com/alexanderramin/drydock/internal/solver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billingOf(v float64) *float64 { return &v }

// TestBuild_ScenarioTwoProjectsForcedApart mirrors a literal end-to-end scenario:
// two AFLOAT projects that cannot share either quay, so they must split
// across SUR and NORTE for their overlapping days.
func TestBuild_ScenarioTwoProjectsForcedApart(t *testing.T) {
	locations, err := domain.NewLocationSet([]domain.Location{
		{Name: "SUR", Kind: domain.Quay, Length: 130},
		{Name: "NORTE", Kind: domain.Quay, Length: 110},
	})
	require.NoError(t, err)

	projects := map[string]domain.Project{
		"PRO1": {ID: "PRO1", Eslora: 120, Billing: billingOf(1300), ToOptimize: true},
		"PRO2": {ID: "PRO2", Eslora: 100, Billing: billingOf(700), ToOptimize: true},
	}

	pro1 := domain.Period{Key: domain.PeriodKey{ProjectID: "PRO1"}, Type: domain.Afloat, FirstDay: 0, LastDay: 12, Declared: domain.UnassignedArea()}
	pro2 := domain.Period{Key: domain.PeriodKey{ProjectID: "PRO2"}, Type: domain.Afloat, FirstDay: 2, LastDay: 8, Declared: domain.UnassignedArea()}
	pro1.Days = rangeInts(0, 12)
	pro1.Candidates = []string{"SUR", "NORTE"}
	pro2.Days = rangeInts(2, 8)
	pro2.Candidates = []string{"SUR", "NORTE"}

	in := Inputs{
		Periods:      []domain.Period{pro1, pro2},
		Projects:     projects,
		Locations:    locations,
		BillingDaily: map[string]float64{"PRO1": 100, "PRO2": 100},
		Config: domain.Config{
			MovementPenalty:          10,
			MaxMovementsPerProject:   5,
			MaxSynchroliftUsesPerDay: 5,
		},
		Horizon: 20,
	}

	bb := solver.NewBranchAndBound()
	built := Build(bb, in)

	status, err := bb.Solve(context.Background(), 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, solver.StatusOptimal, status)

	y1, _ := bb.ValueOf(built.Y["PRO1"])
	y2, _ := bb.ValueOf(built.Y["PRO2"])
	assert.Equal(t, 1, y1)
	assert.Equal(t, 1, y2)

	for _, d := range []int{2, 5, 8} {
		loc1 := chosenLocation(t, bb, built, "PRO1_0", d, []string{"SUR", "NORTE"})
		loc2 := chosenLocation(t, bb, built, "PRO2_0", d, []string{"SUR", "NORTE"})
		assert.NotEqual(t, loc1, loc2, "day %d: both projects cannot share a single quay", d)
	}
}

func rangeInts(first, last int) []int {
	out := make([]int, 0, last-first+1)
	for d := first; d <= last; d++ {
		out = append(out, d)
	}
	return out
}

func chosenLocation(t *testing.T, bb *solver.BranchAndBound, built *Built, periodID string, day int, candidates []string) string {
	t.Helper()
	for _, loc := range candidates {
		v, ok := built.X[XKey{PeriodID: periodID, Day: day, Location: loc}]
		if !ok {
			continue
		}
		val, err := bb.ValueOf(v)
		require.NoError(t, err)
		if val == 1 {
			return loc
		}
	}
	return ""
}
