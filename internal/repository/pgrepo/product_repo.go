package pgrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"geeta-backend/internal/domain"
)

type productRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &productRepository{db: db}
}

// GetProductSnapshot resolves a gift product reference to its display
// snapshot. Only active products are eligible as gifts.
func (r *productRepository) GetProductSnapshot(ctx context.Context, id uuid.UUID) (*domain.ProductSnapshot, error) {
	query := `
		SELECT id, name, image_url, price
		FROM products
		WHERE id = $1 AND is_active = TRUE`

	var (
		pid   pgtype.UUID
		name  string
		image pgtype.Text
		price int64
	)
	err := r.db.QueryRow(ctx, query, pgtype.UUID{Bytes: id, Valid: true}).
		Scan(&pid, &name, &image, &price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "product", ID: id.String()}
		}
		return nil, classifyErr("products.snapshot", err)
	}

	return &domain.ProductSnapshot{
		ID:       uuid.UUID(pid.Bytes),
		Name:     name,
		ImageURL: image.String,
		Price:    price,
	}, nil
}
