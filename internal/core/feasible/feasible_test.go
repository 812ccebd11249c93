package feasible

import (
	"testing"

	"github.com/alexanderramin/drydock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func locSet(t *testing.T) domain.LocationSet {
	ls, err := domain.NewLocationSet([]domain.Location{
		{Name: "SUR", Kind: domain.Quay, Length: 130},
		{Name: "NORTE", Kind: domain.Quay, Length: 110},
		{Name: "CALLE1", Kind: domain.Street, Length: 100, Width: 20},
	})
	require.NoError(t, err)
	return ls
}

func TestExpand_ConcreteAreaIsSingleton(t *testing.T) {
	ls := locSet(t)
	lift := domain.Synchrolift{MaxLength: 150, MaxWidth: 25}
	projects := map[string]domain.Project{"PRO1": {ID: "PRO1", Eslora: 120, Manga: 18}}
	periods := []domain.Period{
		{Key: domain.PeriodKey{ProjectID: "PRO1"}, Type: domain.Afloat, FirstDay: 0, LastDay: 4, Declared: domain.ConcreteArea("SUR")},
	}
	out, err := Expand(periods, projects, ls, lift, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"SUR"}, out[0].Candidates)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, out[0].Days)
}

func TestExpand_AfloatUnassignedFiltersHorQuaysByLength(t *testing.T) {
	ls := locSet(t)
	lift := domain.Synchrolift{MaxLength: 150, MaxWidth: 25}
	projects := map[string]domain.Project{"PRO1": {ID: "PRO1", Eslora: 120, Manga: 18}}
	periods := []domain.Period{
		{Key: domain.PeriodKey{ProjectID: "PRO1"}, Type: domain.Afloat, FirstDay: 0, LastDay: 2, Declared: domain.UnassignedArea()},
	}
	out, err := Expand(periods, projects, ls, lift, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"SUR"}, out[0].Candidates)
}

func TestExpand_AshoreRejectedBySynchroliftEnvelope(t *testing.T) {
	ls := locSet(t)
	lift := domain.Synchrolift{MaxLength: 90, MaxWidth: 15}
	projects := map[string]domain.Project{"PRO2": {ID: "PRO2", Eslora: 95, Manga: 18}}
	periods := []domain.Period{
		{Key: domain.PeriodKey{ProjectID: "PRO2"}, Type: domain.Ashore, FirstDay: 0, LastDay: 2, Declared: domain.UnassignedArea()},
	}
	out, err := Expand(periods, projects, ls, lift, 10)
	require.NoError(t, err)
	assert.Empty(t, out[0].Candidates)
}

func TestExpand_DaysClampedToHorizonAndPastOmitted(t *testing.T) {
	ls := locSet(t)
	lift := domain.Synchrolift{MaxLength: 150, MaxWidth: 25}
	projects := map[string]domain.Project{"PRO1": {ID: "PRO1", Eslora: 120, Manga: 18}}

	past := domain.Period{Key: domain.PeriodKey{ProjectID: "PRO1"}, Type: domain.Afloat, FirstDay: -5, LastDay: -1, Declared: domain.ConcreteArea("SUR")}
	future := domain.Period{Key: domain.PeriodKey{ProjectID: "PRO1", Seq: 1}, Type: domain.Afloat, FirstDay: 0, LastDay: 20, Declared: domain.UnassignedArea()}

	out, err := Expand([]domain.Period{past, future}, projects, ls, lift, 10)
	require.NoError(t, err)
	assert.Empty(t, out[0].Days)
	assert.Equal(t, 11, len(out[1].Days))
	assert.Equal(t, 10, out[1].Days[len(out[1].Days)-1])
}

func TestExpand_UnknownProjectFails(t *testing.T) {
	ls := locSet(t)
	lift := domain.Synchrolift{MaxLength: 150, MaxWidth: 25}
	periods := []domain.Period{
		{Key: domain.PeriodKey{ProjectID: "GHOST"}, Type: domain.Afloat, FirstDay: 0, LastDay: 2, Declared: domain.UnassignedArea()},
	}
	_, err := Expand(periods, map[string]domain.Project{}, ls, lift, 10)
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
}
