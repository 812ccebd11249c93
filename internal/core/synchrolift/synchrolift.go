// Package synchrolift implements the Synchrolift Aggregator:
// it counts committed synchrolift uses per day contributed by non-optimizable
// projects' ASHORE period boundaries.
package synchrolift

import (
	"sort"

	"github.com/alexanderramin/drydock/internal/domain"
)

// Committed returns, per day, the count of launch and lift events from
// non-optimizable projects, capped by maxUsesPerDay.
//
// A launch event occurs on the first_day of an ASHORE period whose
// predecessor (if any, within the same project) is not ASHORE. A lift
// event occurs on the last_day of an ASHORE period whose successor (if
// any) is not ASHORE.
func Committed(periods []domain.Period, optimizable map[string]bool, maxUsesPerDay int) map[int]int {
	byProject := make(map[string][]domain.Period)
	for _, p := range periods {
		if optimizable[p.Key.ProjectID] {
			continue
		}
		byProject[p.Key.ProjectID] = append(byProject[p.Key.ProjectID], p)
	}

	out := make(map[int]int)
	for _, ps := range byProject {
		sort.SliceStable(ps, func(i, j int) bool { return ps[i].FirstDay < ps[j].FirstDay })
		for i, p := range ps {
			if p.Type != domain.Ashore {
				continue
			}
			var prevAshore, nextAshore bool
			if i > 0 {
				prevAshore = ps[i-1].Type == domain.Ashore
			}
			if i < len(ps)-1 {
				nextAshore = ps[i+1].Type == domain.Ashore
			}
			if !prevAshore {
				out[p.FirstDay]++
			}
			if !nextAshore {
				out[p.LastDay]++
			}
		}
	}

	for d, n := range out {
		if n > maxUsesPerDay {
			out[d] = maxUsesPerDay
		}
	}
	return out
}
