package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RuleStatus is the lifecycle state of a gift rule. Inactive rules are
// excluded from resolution but retained for administration.
type RuleStatus string

const (
	RuleStatusActive   RuleStatus = "active"
	RuleStatusInactive RuleStatus = "inactive"
)

// Valid reports whether s is a known status value.
func (s RuleStatus) Valid() bool {
	return s == RuleStatusActive || s == RuleStatusInactive
}

// GiftRule is one threshold tier: carts at or above MinCartValue unlock
// the referenced gift product. All amounts are integer paise.
type GiftRule struct {
	ID            uuid.UUID        `json:"id"`
	MinCartValue  int64            `json:"minCartValue"`
	GiftProductID uuid.UUID        `json:"giftProductId"`
	GiftProduct   *ProductSnapshot `json:"giftProduct,omitempty"`
	Status        RuleStatus       `json:"status"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// Resolution is the outcome of evaluating a cart subtotal against the
// active rule set. Qualified is ordered ascending by threshold (ties by
// ID). Primary is the richest qualifying tier, kept for consumers that
// expect a single gift. NextTier is the cheapest unreached threshold,
// used for "spend X more to unlock Y" messaging; AmountToNext is 0 when
// NextTier is absent.
type Resolution struct {
	Subtotal     int64      `json:"subtotal"`
	Qualified    []GiftRule `json:"qualified"`
	Primary      *GiftRule  `json:"primary,omitempty"`
	NextTier     *GiftRule  `json:"nextTier,omitempty"`
	AmountToNext int64      `json:"amountToNext"`
}

// GiftRuleFilter narrows ListGiftRules/CountGiftRules. A nil Status
// means any status. Limit <= 0 means no limit.
type GiftRuleFilter struct {
	Status *RuleStatus
	Limit  int
	Offset int
}

// GiftRuleRepository is the persistence boundary for gift rules.
// Listings are always ordered ascending by MinCartValue with ties broken
// by creation order, so retrieval order is deterministic.
type GiftRuleRepository interface {
	CreateGiftRule(ctx context.Context, rule *GiftRule) error
	GetGiftRuleByID(ctx context.Context, id uuid.UUID) (*GiftRule, error)
	ListGiftRules(ctx context.Context, filter GiftRuleFilter) ([]GiftRule, error)
	CountGiftRules(ctx context.Context, filter GiftRuleFilter) (int64, error)
	UpdateGiftRule(ctx context.Context, rule *GiftRule) error
	DeleteGiftRule(ctx context.Context, id uuid.UUID) error
}
