package domain

import "strconv"

// PeriodKey identifies a period by its owning project and per-project
// sequence index, assigned by the Normalizer.
type PeriodKey struct {
	ProjectID string
	Seq       int
}

// ID renders the period key the way the rest of the system (and the
// output table's id_proyecto_reparacion column) expects: "{project}_{seq}".
func (k PeriodKey) ID() string {
	return k.ProjectID + "_" + strconv.Itoa(k.Seq)
}

// Period is one contiguous, single-type, single-area span of a project's
// repair schedule. FirstDay/LastDay are signed, epoch-relative day offsets.
type Period struct {
	Key      PeriodKey
	Type     PeriodType
	FirstDay int
	LastDay  int
	Declared Area

	// Days and Candidates are derived fields filled in by the Feasibility
	// Expander; empty until that stage runs.
	Days       []int
	Candidates []string
}

// Validate enforces the ordering invariant: a period's
// span cannot run backwards.
func (p Period) Validate() error {
	if p.LastDay < p.FirstDay {
		return errInvalidInput("period %s: last_day %d < first_day %d", p.Key.ID(), p.LastDay, p.FirstDay)
	}
	return nil
}
