package domain

import (
	"context"

	"github.com/google/uuid"
)

// ProductSnapshot is the denormalized display view of a gift product
// (name, image, price) attached to a rule for presentation layers. The
// resolver never reads it.
type ProductSnapshot struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"imageUrl"`
	Price    int64     `json:"price"` // paise
}

// ProductRepository is the product-reference collaborator. It resolves a
// gift product reference to a display snapshot and is consulted when a
// rule is created or activated to verify the reference exists.
type ProductRepository interface {
	GetProductSnapshot(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
}
