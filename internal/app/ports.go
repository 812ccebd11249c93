package app

import "context"

// OptimizeUseCase runs one full berth-and-hardstand assignment
// optimization from the two input files down to a consolidated schedule.
type OptimizeUseCase interface {
	Optimize(ctx context.Context, req OptimizeRequest) (*OptimizeResponse, error)
}
