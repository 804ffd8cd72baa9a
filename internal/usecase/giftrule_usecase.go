package usecase

import (
	"context"

	"github.com/google/uuid"

	"geeta-backend/internal/domain"
	"geeta-backend/internal/rulecache"
)

// GiftRuleUsecase handles admin gift-rule management. Every mutation
// invalidates the rule snapshot before returning, so an administrator
// sees their own change on the next read.
type GiftRuleUsecase struct {
	repo     domain.GiftRuleRepository
	products domain.ProductRepository
	rules    *rulecache.RuleCache
}

func NewGiftRuleUsecase(repo domain.GiftRuleRepository, products domain.ProductRepository, rules *rulecache.RuleCache) *GiftRuleUsecase {
	return &GiftRuleUsecase{
		repo:     repo,
		products: products,
		rules:    rules,
	}
}

// CreateGiftRuleRequest represents the input for creating a rule.
// MinCartValue is in paise. Status defaults to active when omitted.
type CreateGiftRuleRequest struct {
	MinCartValue  int64  `json:"minCartValue"`
	GiftProductID string `json:"giftProductId"`
	Status        string `json:"status"`
}

func (uc *GiftRuleUsecase) CreateGiftRule(ctx context.Context, req CreateGiftRuleRequest) (*domain.GiftRule, error) {
	if req.MinCartValue < 0 {
		return nil, &domain.ValidationError{Field: "minCartValue", Reason: "must be non-negative"}
	}

	if req.GiftProductID == "" {
		return nil, &domain.ValidationError{Field: "giftProductId", Reason: "is required"}
	}
	productID, err := uuid.Parse(req.GiftProductID)
	if err != nil {
		return nil, &domain.ValidationError{Field: "giftProductId", Reason: "must be a valid UUID"}
	}

	status := domain.RuleStatus(req.Status)
	if req.Status == "" {
		status = domain.RuleStatusActive
	}
	if !status.Valid() {
		return nil, &domain.ValidationError{Field: "status", Reason: "must be 'active' or 'inactive'"}
	}

	rule := &domain.GiftRule{
		MinCartValue:  req.MinCartValue,
		GiftProductID: productID,
		Status:        status,
	}

	// The product reference is verified (and its display snapshot
	// attached) whenever a rule enters the active state.
	if status == domain.RuleStatusActive {
		snapshot, err := uc.verifyProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		rule.GiftProduct = snapshot
	}

	if err := uc.repo.CreateGiftRule(ctx, rule); err != nil {
		return nil, err
	}

	uc.rules.Invalidate()
	return rule, nil
}

// ListGiftRules returns a page of rules of any status, ascending by
// threshold. statusFilter narrows by status when non-empty.
func (uc *GiftRuleUsecase) ListGiftRules(ctx context.Context, statusFilter string, limit, offset int) ([]domain.GiftRule, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	filter := domain.GiftRuleFilter{Limit: limit, Offset: offset}
	if statusFilter != "" {
		status := domain.RuleStatus(statusFilter)
		if !status.Valid() {
			return nil, 0, &domain.ValidationError{Field: "status", Reason: "must be 'active' or 'inactive'"}
		}
		filter.Status = &status
	}

	rules, err := uc.repo.ListGiftRules(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.repo.CountGiftRules(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return rules, total, nil
}

func (uc *GiftRuleUsecase) GetGiftRule(ctx context.Context, id string) (*domain.GiftRule, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, &domain.ValidationError{Field: "id", Reason: "must be a valid UUID"}
	}
	return uc.repo.GetGiftRuleByID(ctx, uid)
}

// UpdateGiftRuleRequest carries a partial update: nil fields keep their
// current value.
type UpdateGiftRuleRequest struct {
	MinCartValue  *int64  `json:"minCartValue"`
	GiftProductID *string `json:"giftProductId"`
	Status        *string `json:"status"`
}

func (uc *GiftRuleUsecase) UpdateGiftRule(ctx context.Context, id string, req UpdateGiftRuleRequest) (*domain.GiftRule, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, &domain.ValidationError{Field: "id", Reason: "must be a valid UUID"}
	}

	rule, err := uc.repo.GetGiftRuleByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	productChanged := false
	if req.MinCartValue != nil {
		if *req.MinCartValue < 0 {
			return nil, &domain.ValidationError{Field: "minCartValue", Reason: "must be non-negative"}
		}
		rule.MinCartValue = *req.MinCartValue
	}
	if req.GiftProductID != nil {
		productID, err := uuid.Parse(*req.GiftProductID)
		if err != nil {
			return nil, &domain.ValidationError{Field: "giftProductId", Reason: "must be a valid UUID"}
		}
		productChanged = productID != rule.GiftProductID
		rule.GiftProductID = productID
	}
	if req.Status != nil {
		status := domain.RuleStatus(*req.Status)
		if !status.Valid() {
			return nil, &domain.ValidationError{Field: "status", Reason: "must be 'active' or 'inactive'"}
		}
		rule.Status = status
	}

	if rule.Status == domain.RuleStatusActive && (productChanged || rule.GiftProduct == nil) {
		snapshot, err := uc.verifyProduct(ctx, rule.GiftProductID)
		if err != nil {
			return nil, err
		}
		rule.GiftProduct = snapshot
	}

	if err := uc.repo.UpdateGiftRule(ctx, rule); err != nil {
		return nil, err
	}

	uc.rules.Invalidate()
	return rule, nil
}

func (uc *GiftRuleUsecase) DeleteGiftRule(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return &domain.ValidationError{Field: "id", Reason: "must be a valid UUID"}
	}

	if err := uc.repo.DeleteGiftRule(ctx, uid); err != nil {
		return err
	}

	uc.rules.Invalidate()
	return nil
}

// verifyProduct confirms the gift product exists and is active, and
// returns its display snapshot. A missing product is a validation
// failure on the reference, not a NotFound on the rule.
func (uc *GiftRuleUsecase) verifyProduct(ctx context.Context, id uuid.UUID) (*domain.ProductSnapshot, error) {
	snapshot, err := uc.products.GetProductSnapshot(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, &domain.ValidationError{Field: "giftProductId", Reason: "referenced product does not exist or is inactive"}
		}
		return nil, err
	}
	return snapshot, nil
}
