package artperiods

//go:generate mockgen -destination=mock/mock.go -package=mockartperiods -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/vertical-mint/internal/domain/artperiod"
)

// Repository persists art periods added or retired at runtime
type Repository interface {
	// Save creates or replaces a period by ID
	Save(ctx context.Context, period *artperiod.ArtPeriod) error

	// List returns every persisted period, in no particular order
	List(ctx context.Context) ([]*artperiod.ArtPeriod, error)
}
