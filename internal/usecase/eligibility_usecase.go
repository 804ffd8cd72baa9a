package usecase

import (
	"context"

	"geeta-backend/internal/domain"
	"geeta-backend/internal/resolver"
	"geeta-backend/internal/rulecache"
)

// EligibilityUsecase serves the customer-facing read surface: active
// rules only, and gift resolution for a cart subtotal. Both run against
// the rule snapshot so cart changes never block on the database.
type EligibilityUsecase struct {
	rules *rulecache.RuleCache
}

func NewEligibilityUsecase(rules *rulecache.RuleCache) *EligibilityUsecase {
	return &EligibilityUsecase{rules: rules}
}

// ActiveGiftRules returns the active rules sorted ascending by
// threshold. stale is true when the snapshot could not be refreshed and
// a last-known-good copy was served instead.
func (uc *EligibilityUsecase) ActiveGiftRules(ctx context.Context) (rules []domain.GiftRule, stale bool, err error) {
	return uc.rules.ActiveRules(ctx)
}

// ResolveCart computes gift eligibility for a subtotal in paise.
func (uc *EligibilityUsecase) ResolveCart(ctx context.Context, subtotal int64) (*domain.Resolution, bool, error) {
	rules, stale, err := uc.rules.ActiveRules(ctx)
	if err != nil {
		return nil, false, err
	}

	res, err := resolver.Resolve(subtotal, rules)
	if err != nil {
		return nil, false, err
	}
	return res, stale, nil
}
