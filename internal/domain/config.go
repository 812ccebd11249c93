package domain

// Config holds the solver parameters for one optimization run. Immutable
// once built: it is passed by value into the
// Model Builder.
type Config struct {
	MovementPenalty          float64
	MaxMovementsPerProject   int
	MaxSynchroliftUsesPerDay int
	MinDailyBilling          float64
}
