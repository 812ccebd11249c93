package synchrolift

import (
	"testing"

	"github.com/alexanderramin/drydock/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCommitted_LaunchAndLiftOnBoundaries(t *testing.T) {
	periods := []domain.Period{
		{Key: domain.PeriodKey{ProjectID: "PRO5"}, Type: domain.Afloat, FirstDay: -3, LastDay: -1, Declared: domain.ConcreteArea("SUR")},
		{Key: domain.PeriodKey{ProjectID: "PRO5", Seq: 1}, Type: domain.Ashore, FirstDay: 0, LastDay: 6, Declared: domain.ConcreteArea("CALLE1")},
		{Key: domain.PeriodKey{ProjectID: "PRO5", Seq: 2}, Type: domain.Afloat, FirstDay: 7, LastDay: 10, Declared: domain.ConcreteArea("NORTE")},
	}
	out := Committed(periods, map[string]bool{}, 5)
	assert.Equal(t, 1, out[0])
	assert.Equal(t, 1, out[6])
	assert.Equal(t, 0, out[7])
}

func TestCommitted_CapsAtMaxUsesPerDay(t *testing.T) {
	periods := []domain.Period{
		{Key: domain.PeriodKey{ProjectID: "PRO5"}, Type: domain.Ashore, FirstDay: 0, LastDay: 3, Declared: domain.ConcreteArea("A")},
		{Key: domain.PeriodKey{ProjectID: "PRO6"}, Type: domain.Ashore, FirstDay: 0, LastDay: 5, Declared: domain.ConcreteArea("B")},
	}
	out := Committed(periods, map[string]bool{}, 1)
	assert.Equal(t, 1, out[0])
}

func TestCommitted_SkipsOptimizableProjects(t *testing.T) {
	periods := []domain.Period{
		{Key: domain.PeriodKey{ProjectID: "PRO1"}, Type: domain.Ashore, FirstDay: 0, LastDay: 3, Declared: domain.UnassignedArea()},
	}
	out := Committed(periods, map[string]bool{"PRO1": true}, 5)
	assert.Empty(t, out)
}
