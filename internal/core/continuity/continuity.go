// Package continuity implements the Continuity Detector: it
// finds optimizable day-0 periods whose immediately preceding pre-epoch
// period was the same type with a concrete declared area, and emits the
// area that period would continue if day 0 is not moved away from it.
package continuity

import "github.com/alexanderramin/drydock/internal/domain"

// PreviousArea returns, per period id (domain.PeriodKey.ID), the concrete
// area name that period's immediate predecessor occupied, for every
// optimizable period starting at day 0 whose predecessor ended at day -1
// with the same type and a concrete declared area.
func PreviousArea(periods []domain.Period, optimizable map[string]bool) map[string]string {
	byProject := make(map[string][]domain.Period)
	for _, p := range periods {
		if !optimizable[p.Key.ProjectID] {
			continue
		}
		byProject[p.Key.ProjectID] = append(byProject[p.Key.ProjectID], p)
	}

	out := make(map[string]string)
	for _, ps := range byProject {
		for i := 1; i < len(ps); i++ {
			prev, cur := ps[i-1], ps[i]
			if cur.FirstDay != 0 || prev.LastDay != -1 {
				continue
			}
			if cur.Type != prev.Type {
				continue
			}
			if prev.Declared.IsUnassigned() {
				continue
			}
			out[cur.Key.ID()] = prev.Declared.Name()
		}
	}
	return out
}
