package generations

//go:generate mockgen -destination=mock/mock.go -package=mockgenerations -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/vertical-mint/internal/domain/nft"
)

// Repository stores generation records by token
type Repository interface {
	// Save creates or replaces the record for record.TokenID
	Save(ctx context.Context, record *nft.Record) error

	// Get returns a not found error for unknown tokens
	Get(ctx context.Context, tokenID uint64) (*nft.Record, error)

	// ListRecent returns up to limit records, newest first
	ListRecent(ctx context.Context, limit int) ([]*nft.Record, error)
}
