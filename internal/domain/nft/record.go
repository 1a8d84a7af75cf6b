package nft

import (
	"time"

	"github.com/KirkDiggler/vertical-mint/internal/domain/traits"
)

// Record is the stored outcome of one successful generation
type Record struct {
	TokenID        uint64                 `json:"token_id"`
	ImageURI       string                 `json:"image_uri"`
	MetadataURI    string                 `json:"metadata_uri"`
	Metadata       *TokenMetadata         `json:"metadata"`
	Traits         *traits.SelectedTraits `json:"traits"`
	Prompt         string                 `json:"prompt"`
	NegativePrompt string                 `json:"negative_prompt"`
	Strategy       string                 `json:"strategy"`
	PeriodID       string                 `json:"period_id,omitempty"`
	MetadataLinked bool                   `json:"metadata_linked"`
	TxHash         string                 `json:"tx_hash,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// Clone copies the record and its metadata attributes. Traits are shared;
// they are never mutated after selection.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	if r.Metadata != nil {
		meta := *r.Metadata
		meta.Attributes = append([]Attribute(nil), r.Metadata.Attributes...)
		out.Metadata = &meta
	}
	return &out
}
