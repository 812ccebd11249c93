// Package normalize implements the Normalizer: it converts
// calendar periods to the signed day axis, merges consecutive same-type
// same-area periods, splits periods that straddle the epoch, and assigns
// per-project sequence indices.
package normalize

import (
	"sort"
	"time"

	"github.com/alexanderramin/drydock/internal/domain"
)

// RawPeriod is a period as read from the job JSON, before day-axis
// conversion. Dates are calendar dates (no time-of-day component).
type RawPeriod struct {
	ProjectID    string
	Type         domain.PeriodType
	FirstDate    time.Time
	LastDate     time.Time
	DeclaredArea domain.Area
}

const dayDuration = 24 * time.Hour

func toDayOffset(t, epoch time.Time) int {
	return int(t.Sub(epoch) / dayDuration)
}

// Normalize runs the full Normalizer pipeline and returns the canonical
// period table keyed by (project_id, sequence_index), sorted by
// (project_id, first_day).
//
// toOptimize reports, per project id, whether the project is optimizable.
// knownLocations reports, per location name, whether it is a recognized
// location (used to validate declared areas on non-optimizable periods).
func Normalize(periods []RawPeriod, epoch time.Time, toOptimize map[string]bool, knownLocations map[string]bool) ([]domain.Period, error) {
	converted := make([]domain.Period, 0, len(periods))
	for _, rp := range periods {
		p := domain.Period{
			Key:      domain.PeriodKey{ProjectID: rp.ProjectID},
			Type:     rp.Type,
			FirstDay: toDayOffset(rp.FirstDate, epoch),
			LastDay:  toDayOffset(rp.LastDate, epoch),
			Declared: rp.DeclaredArea,
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if !toOptimize[rp.ProjectID] && !p.Declared.IsUnassigned() {
			if !knownLocations[p.Declared.Name()] {
				return nil, domainInvalidInput("period of project %q declares unknown area %q", rp.ProjectID, p.Declared.Name())
			}
		}
		converted = append(converted, p)
	}

	sortByProjectThenFirstDay(converted)
	merged := mergeConsecutive(converted)
	split := splitAcrossEpoch(merged)
	sortByProjectThenFirstDay(split)
	sequenced := assignSequence(split)

	for i, p := range sequenced {
		if toOptimize[p.Key.ProjectID] && p.FirstDay >= 0 {
			sequenced[i].Declared = domain.UnassignedArea()
		}
	}

	return sequenced, nil
}

func sortByProjectThenFirstDay(periods []domain.Period) {
	sort.SliceStable(periods, func(i, j int) bool {
		if periods[i].Key.ProjectID != periods[j].Key.ProjectID {
			return periods[i].Key.ProjectID < periods[j].Key.ProjectID
		}
		return periods[i].FirstDay < periods[j].FirstDay
	})
}

// mergeConsecutive merges adjacent same-project periods that share type and
// declared area and whose days are contiguous. The input must already be
// sorted by (project_id, first_day).
func mergeConsecutive(periods []domain.Period) []domain.Period {
	if len(periods) == 0 {
		return periods
	}
	merged := make([]domain.Period, 0, len(periods))
	current := periods[0]
	for _, next := range periods[1:] {
		sameProject := next.Key.ProjectID == current.Key.ProjectID
		sameShape := next.Type == current.Type && next.Declared.Equal(current.Declared)
		contiguous := next.FirstDay == current.LastDay+1
		if sameProject && sameShape && contiguous {
			current.LastDay = next.LastDay
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}

// splitAcrossEpoch splits any period straddling day 0 into a past half
// (ending at -1) and a future half (starting at 0), both inheriting type
// and declared area.
func splitAcrossEpoch(periods []domain.Period) []domain.Period {
	out := make([]domain.Period, 0, len(periods)+4)
	for _, p := range periods {
		if p.FirstDay < 0 && p.LastDay >= 0 {
			past := p
			past.LastDay = -1
			future := p
			future.FirstDay = 0
			out = append(out, past, future)
			continue
		}
		out = append(out, p)
	}
	return out
}

// assignSequence enumerates each project's periods from 0: sort by
// (project_id, first_day) after merge and split, then number from 0.
func assignSequence(periods []domain.Period) []domain.Period {
	seq := make(map[string]int, len(periods))
	out := make([]domain.Period, len(periods))
	for i, p := range periods {
		n := seq[p.Key.ProjectID]
		p.Key.Seq = n
		seq[p.Key.ProjectID] = n + 1
		out[i] = p
	}
	return out
}

func domainInvalidInput(format string, args ...any) error {
	return domain.NewInvalidInputError(format, args...)
}
