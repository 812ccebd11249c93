// Package historical implements the Historical Aggregator:
// it derives two constant tables the Model Builder treats as fixed load —
// committed occupied length per (day, location), from every
// non-optimizable period, and prior movement counts per optimizable
// project, from its pre-epoch periods.
package historical

import "github.com/alexanderramin/drydock/internal/domain"

// LengthKey indexes CommittedLength.
type LengthKey struct {
	Day      int
	Location string
}

// CommittedLength returns, for every non-optimizable period with a concrete
// declared area, the occupied length contributed to each day it covers,
// summed per (day, location) and capped by that location's physical length
// (the cap prevents infeasibility from slightly over-stuffed committed
// plans).
//
// optimizable reports, per project id, whether the project is optimizable;
// only non-optimizable periods contribute.
func CommittedLength(periods []domain.Period, projects map[string]domain.Project, locations domain.LocationSet, optimizable map[string]bool) map[LengthKey]float64 {
	out := make(map[LengthKey]float64)
	for _, p := range periods {
		if optimizable[p.Key.ProjectID] || p.Declared.IsUnassigned() {
			continue
		}
		project, ok := projects[p.Key.ProjectID]
		if !ok {
			continue
		}
		loc, ok := locations.Lookup(p.Declared.Name())
		if !ok {
			continue
		}
		for d := p.FirstDay; d <= p.LastDay; d++ {
			key := LengthKey{Day: d, Location: loc.Name}
			out[key] += project.Eslora
			if out[key] > loc.Length {
				out[key] = loc.Length
			}
		}
	}
	return out
}

// PriorMovements counts, per optimizable project, consecutive pre-epoch
// period pairs (next.FirstDay == prev.LastDay+1) of the same type with a
// distinct declared area (UNASSIGNED counts as distinct from any concrete
// area), capped by maxMovementsPerProject.
//
// periods must already be sorted by (project_id, first_day); the
// Normalizer guarantees this.
func PriorMovements(periods []domain.Period, optimizable map[string]bool, maxMovementsPerProject int) map[string]int {
	out := make(map[string]int)
	var prev domain.Period
	havePrev := false
	for _, p := range periods {
		if !optimizable[p.Key.ProjectID] || p.LastDay > -1 {
			continue
		}
		if havePrev && prev.Key.ProjectID == p.Key.ProjectID &&
			p.FirstDay == prev.LastDay+1 &&
			p.Type == prev.Type &&
			!p.Declared.Equal(prev.Declared) {
			out[p.Key.ProjectID]++
		}
		prev = p
		havePrev = true
	}
	for id, n := range out {
		if n > maxMovementsPerProject {
			out[id] = maxMovementsPerProject
		}
	}
	return out
}
