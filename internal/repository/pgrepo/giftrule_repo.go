package pgrepo

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"geeta-backend/internal/domain"
)

type giftRuleRepository struct {
	db *pgxpool.Pool
}

func NewGiftRuleRepository(db *pgxpool.Pool) domain.GiftRuleRepository {
	return &giftRuleRepository{db: db}
}

// Listings ascend by threshold with created_at (then id) breaking ties,
// so retrieval order is deterministic for equal thresholds.
const giftRuleColumns = `
	gr.id, gr.min_cart_value, gr.gift_product_id, gr.status,
	gr.created_at, gr.updated_at,
	p.id, p.name, p.image_url, p.price`

const giftRuleFrom = `
	FROM gift_rules gr
	LEFT JOIN products p ON p.id = gr.gift_product_id`

func (r *giftRuleRepository) CreateGiftRule(ctx context.Context, rule *domain.GiftRule) error {
	query := `
		INSERT INTO gift_rules (min_cart_value, gift_product_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	var id pgtype.UUID
	var createdAt, updatedAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query,
		rule.MinCartValue,
		pgtype.UUID{Bytes: rule.GiftProductID, Valid: true},
		string(rule.Status),
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return classifyErr("gift_rules.create", err)
	}

	rule.ID = uuid.UUID(id.Bytes)
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time
	return nil
}

func (r *giftRuleRepository) GetGiftRuleByID(ctx context.Context, id uuid.UUID) (*domain.GiftRule, error) {
	query := `SELECT` + giftRuleColumns + giftRuleFrom + ` WHERE gr.id = $1`

	row := r.db.QueryRow(ctx, query, pgtype.UUID{Bytes: id, Valid: true})
	rule, err := scanGiftRule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "gift rule", ID: id.String()}
		}
		return nil, classifyErr("gift_rules.get", err)
	}
	return rule, nil
}

func (r *giftRuleRepository) ListGiftRules(ctx context.Context, filter domain.GiftRuleFilter) ([]domain.GiftRule, error) {
	query := `SELECT` + giftRuleColumns + giftRuleFrom
	args := []interface{}{}

	if filter.Status != nil {
		query += ` WHERE gr.status = $1`
		args = append(args, string(*filter.Status))
	}
	query += ` ORDER BY gr.min_cart_value ASC, gr.created_at ASC, gr.id ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		query += ` LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, classifyErr("gift_rules.list", err)
	}
	defer rows.Close()

	var result []domain.GiftRule
	for rows.Next() {
		rule, err := scanGiftRule(rows)
		if err != nil {
			return nil, classifyErr("gift_rules.list", err)
		}
		result = append(result, *rule)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyErr("gift_rules.list", err)
	}
	return result, nil
}

func (r *giftRuleRepository) CountGiftRules(ctx context.Context, filter domain.GiftRuleFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM gift_rules`
	args := []interface{}{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*filter.Status))
	}

	var n int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, classifyErr("gift_rules.count", err)
	}
	return n, nil
}

func (r *giftRuleRepository) UpdateGiftRule(ctx context.Context, rule *domain.GiftRule) error {
	// RETURNING distinguishes "no such row" from success without a
	// second round-trip.
	query := `
		UPDATE gift_rules
		SET min_cart_value = $2, gift_product_id = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	var updatedAt pgtype.Timestamptz
	err := r.db.QueryRow(ctx, query,
		pgtype.UUID{Bytes: rule.ID, Valid: true},
		rule.MinCartValue,
		pgtype.UUID{Bytes: rule.GiftProductID, Valid: true},
		string(rule.Status),
	).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.NotFoundError{Resource: "gift rule", ID: rule.ID.String()}
		}
		return classifyErr("gift_rules.update", err)
	}

	rule.UpdatedAt = updatedAt.Time
	return nil
}

func (r *giftRuleRepository) DeleteGiftRule(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM gift_rules WHERE id = $1`,
		pgtype.UUID{Bytes: id, Valid: true})
	if err != nil {
		return classifyErr("gift_rules.delete", err)
	}
	// Deleting an already-deleted rule is an error, matching the CRUD
	// contract; callers relying on idempotent delete must check first.
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "gift rule", ID: id.String()}
	}
	return nil
}

func scanGiftRule(row pgx.Row) (*domain.GiftRule, error) {
	var (
		id, productID      pgtype.UUID
		minCartValue       int64
		status             string
		createdAt, updated pgtype.Timestamptz

		snapID    pgtype.UUID
		snapName  pgtype.Text
		snapImage pgtype.Text
		snapPrice pgtype.Int8
	)

	if err := row.Scan(&id, &minCartValue, &productID, &status,
		&createdAt, &updated,
		&snapID, &snapName, &snapImage, &snapPrice); err != nil {
		return nil, err
	}

	rule := &domain.GiftRule{
		ID:            uuid.UUID(id.Bytes),
		MinCartValue:  minCartValue,
		GiftProductID: uuid.UUID(productID.Bytes),
		Status:        domain.RuleStatus(status),
		CreatedAt:     createdAt.Time,
		UpdatedAt:     updated.Time,
	}
	if snapID.Valid {
		rule.GiftProduct = &domain.ProductSnapshot{
			ID:       uuid.UUID(snapID.Bytes),
			Name:     snapName.String,
			ImageURL: snapImage.String,
			Price:    snapPrice.Int64,
		}
	}
	return rule, nil
}
