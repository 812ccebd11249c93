package domain

// Project is a repair job: a hull identified by id, its dimensions, and
// whether the solver is allowed to place its future periods.
type Project struct {
	ID          string
	Eslora      float64 // length overall
	Manga       float64 // beam
	Billing     *float64
	ToOptimize  bool
}

// Validate enforces the billing invariant: optimizable
// projects must supply a billing figure.
func (p Project) Validate() error {
	if p.ToOptimize && p.Billing == nil {
		return errInvalidInput("project %q is marked to-optimize but has no billing figure", p.ID)
	}
	return nil
}
