package billing

import (
	"testing"

	"github.com/alexanderramin/drydock/internal/domain"
	"github.com/stretchr/testify/assert"
)

func billingOf(v float64) *float64 { return &v }

func TestDaily_DividesByDurationPlusOne(t *testing.T) {
	projects := map[string]domain.Project{
		"PRO1": {ID: "PRO1", Billing: billingOf(1300)},
	}
	periods := []domain.Period{
		{Key: domain.PeriodKey{ProjectID: "PRO1"}, FirstDay: 0, LastDay: 12},
	}
	firstDay, lastDay := Span(periods)
	out := Daily(projects, firstDay, lastDay, 0)
	assert.InDelta(t, 100.0, out["PRO1"], 1e-9)
}

func TestDaily_FlooredByMinimum(t *testing.T) {
	projects := map[string]domain.Project{
		"PRO1": {ID: "PRO1", Billing: billingOf(10)},
	}
	periods := []domain.Period{
		{Key: domain.PeriodKey{ProjectID: "PRO1"}, FirstDay: 0, LastDay: 12},
	}
	firstDay, lastDay := Span(periods)
	out := Daily(projects, firstDay, lastDay, 50)
	assert.Equal(t, 50.0, out["PRO1"])
}

func TestDaily_SkipsProjectsWithoutBilling(t *testing.T) {
	projects := map[string]domain.Project{
		"PRO9": {ID: "PRO9"},
	}
	firstDay, lastDay := Span(nil)
	out := Daily(projects, firstDay, lastDay, 10)
	assert.NotContains(t, out, "PRO9")
}

func TestSpan_CoversAllPeriodsOfProject(t *testing.T) {
	periods := []domain.Period{
		{Key: domain.PeriodKey{ProjectID: "PRO1", Seq: 0}, FirstDay: -3, LastDay: -1},
		{Key: domain.PeriodKey{ProjectID: "PRO1", Seq: 1}, FirstDay: 0, LastDay: 4},
	}
	firstDay, lastDay := Span(periods)
	assert.Equal(t, -3, firstDay["PRO1"])
	assert.Equal(t, 4, lastDay["PRO1"])
}
