// Package paramstore loads the defaults parameter file and reconciles
// per-job config overrides, logging one CONFIG_WARNING per overridden key.
package paramstore

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/alexanderramin/drydock/internal/domain"
)

// defaultsSchema is the defaults JSON's wire shape.
type defaultsSchema struct {
	MovedProjectsPenaltyPerMovement float64 `json:"MOVED_PROJECTS_PENALTY_PER_MOVEMENT"`
	MaxMovementsPerProject          int     `json:"MAX_MOVEMENTS_PER_PROJECT"`
	MaxUsesSynchroliftPerDay        int     `json:"MAX_USES_SYNCROLIFT_PER_DAY"`
	MinFacturacionDiaria            float64 `json:"MIN_FACTURACION_DIARIA"`
}

// Load reads the defaults JSON at path and reconciles it against overrides
// (the job JSON's `config` map). Every overridden key is logged at WARN
// level naming {param, old, new}.
func Load(path string, overrides map[string]float64, logger *slog.Logger) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, err
	}
	var defaults defaultsSchema
	if err := json.Unmarshal(data, &defaults); err != nil {
		return domain.Config{}, domain.NewInvalidInputError("parsing defaults file: %v", err)
	}

	cfg := domain.Config{
		MovementPenalty:          defaults.MovedProjectsPenaltyPerMovement,
		MaxMovementsPerProject:   defaults.MaxMovementsPerProject,
		MaxSynchroliftUsesPerDay: defaults.MaxUsesSynchroliftPerDay,
		MinDailyBilling:          defaults.MinFacturacionDiaria,
	}

	applyOverride(logger, "MOVED_PROJECTS_PENALTY_PER_MOVEMENT", cfg.MovementPenalty, overrides, &cfg.MovementPenalty)
	applyIntOverride(logger, "MAX_MOVEMENTS_PER_PROJECT", cfg.MaxMovementsPerProject, overrides, &cfg.MaxMovementsPerProject)
	applyIntOverride(logger, "MAX_USES_SYNCROLIFT_PER_DAY", cfg.MaxSynchroliftUsesPerDay, overrides, &cfg.MaxSynchroliftUsesPerDay)
	applyOverride(logger, "MIN_FACTURACION_DIARIA", cfg.MinDailyBilling, overrides, &cfg.MinDailyBilling)

	return cfg, nil
}

func applyOverride(logger *slog.Logger, key string, current float64, overrides map[string]float64, target *float64) {
	newVal, ok := overrides[key]
	if !ok || newVal == current {
		return
	}
	if logger != nil {
		logger.Warn("config parameter overridden", "param", key, "old", current, "new", newVal)
	}
	*target = newVal
}

func applyIntOverride(logger *slog.Logger, key string, current int, overrides map[string]float64, target *int) {
	newVal, ok := overrides[key]
	if !ok {
		return
	}
	newInt := int(newVal)
	if newInt == current {
		return
	}
	if logger != nil {
		logger.Warn("config parameter overridden", "param", key, "old", current, "new", newInt)
	}
	*target = newInt
}
