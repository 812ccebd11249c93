// Package billing implements the Daily Billing Computer: a
// per-project daily billing rate floored by a configured minimum.
package billing

import "github.com/alexanderramin/drydock/internal/domain"

// Daily returns billing_daily[P] for every project that carries a billing
// figure (projects with nil Billing are omitted): total
// billing divided by (last_day_of_project - first_day_of_project + 1),
// floored by minDailyBilling. firstDay/lastDay span every period belonging
// to the project, including its pre-epoch half.
func Daily(projects map[string]domain.Project, firstDay, lastDay map[string]int, minDailyBilling float64) map[string]float64 {
	out := make(map[string]float64, len(projects))
	for id, project := range projects {
		if project.Billing == nil {
			continue
		}
		duration := lastDay[id] - firstDay[id] + 1
		if duration < 1 {
			duration = 1
		}
		rate := *project.Billing / float64(duration)
		if rate < minDailyBilling {
			rate = minDailyBilling
		}
		out[id] = rate
	}
	return out
}

// Span computes, per project id, the min first_day and max last_day across
// its periods — the duration window Daily needs.
func Span(periods []domain.Period) (firstDay, lastDay map[string]int) {
	firstDay = make(map[string]int)
	lastDay = make(map[string]int)
	seen := make(map[string]bool)
	for _, p := range periods {
		id := p.Key.ProjectID
		if !seen[id] {
			firstDay[id] = p.FirstDay
			lastDay[id] = p.LastDay
			seen[id] = true
			continue
		}
		if p.FirstDay < firstDay[id] {
			firstDay[id] = p.FirstDay
		}
		if p.LastDay > lastDay[id] {
			lastDay[id] = p.LastDay
		}
	}
	return firstDay, lastDay
}
