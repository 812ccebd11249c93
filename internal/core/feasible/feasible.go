// Package feasible implements the Feasibility Expander: for
// every period it computes the candidate location set (respecting declared
// area, vessel dimensions, and the synchrolift envelope) and the list of day
// integers the period covers within the planning horizon.
package feasible

import (
	"github.com/alexanderramin/drydock/internal/domain"
)

// Expand returns a copy of periods with Days and Candidates populated.
// projects must contain an entry for every period's project id; horizon is
// the last day integer of the planning window (inclusive).
func Expand(periods []domain.Period, projects map[string]domain.Project, locations domain.LocationSet, lift domain.Synchrolift, horizon int) ([]domain.Period, error) {
	out := make([]domain.Period, len(periods))
	for i, p := range periods {
		project, ok := projects[p.Key.ProjectID]
		if !ok {
			return nil, domain.NewInvalidInputError("period %s references unknown project %q", p.Key.ID(), p.Key.ProjectID)
		}
		p.Days = days(p, horizon)
		p.Candidates = candidates(p, project, locations, lift)
		out[i] = p
	}
	return out, nil
}

func days(p domain.Period, horizon int) []int {
	if p.LastDay < 0 {
		return nil
	}
	first := p.FirstDay
	if first < 0 {
		first = 0
	}
	last := p.LastDay
	if last > horizon {
		last = horizon
	}
	if last < first {
		return nil
	}
	out := make([]int, 0, last-first+1)
	for d := first; d <= last; d++ {
		out = append(out, d)
	}
	return out
}

func candidates(p domain.Period, project domain.Project, locations domain.LocationSet, lift domain.Synchrolift) []string {
	if !p.Declared.IsUnassigned() {
		return []string{p.Declared.Name()}
	}

	var pool []domain.Location
	switch p.Type {
	case domain.Afloat:
		pool = locations.Quays()
	case domain.Ashore:
		if !lift.Envelope(project.Eslora, project.Manga) {
			return nil
		}
		pool = locations.Streets()
	default:
		return nil
	}

	out := make([]string, 0, len(pool))
	for _, loc := range pool {
		if loc.Fits(project.Eslora, project.Manga) {
			out = append(out, loc.Name)
		}
	}
	return out
}
