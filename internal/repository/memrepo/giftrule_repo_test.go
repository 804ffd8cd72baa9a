package memrepo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geeta-backend/internal/domain"
)

func seed(t *testing.T, repo *GiftRuleRepository, threshold int64, status domain.RuleStatus) domain.GiftRule {
	t.Helper()
	rule := domain.GiftRule{
		MinCartValue:  threshold,
		GiftProductID: uuid.New(),
		Status:        status,
	}
	require.NoError(t, repo.CreateGiftRule(context.Background(), &rule))
	return rule
}

func TestListGiftRules_OrderedByThresholdThenInsertion(t *testing.T) {
	repo := NewGiftRuleRepository()
	ctx := context.Background()

	first := seed(t, repo, 500, domain.RuleStatusActive)
	second := seed(t, repo, 200, domain.RuleStatusActive)
	// Same threshold as first, inserted later: must list after it.
	third := seed(t, repo, 500, domain.RuleStatusActive)

	rules, err := repo.ListGiftRules(ctx, domain.GiftRuleFilter{})
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, second.ID, rules[0].ID)
	assert.Equal(t, first.ID, rules[1].ID)
	assert.Equal(t, third.ID, rules[2].ID)
}

func TestListGiftRules_StatusFilter(t *testing.T) {
	repo := NewGiftRuleRepository()
	ctx := context.Background()

	active := seed(t, repo, 200, domain.RuleStatusActive)
	seed(t, repo, 500, domain.RuleStatusInactive)

	status := domain.RuleStatusActive
	rules, err := repo.ListGiftRules(ctx, domain.GiftRuleFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, active.ID, rules[0].ID)

	n, err := repo.CountGiftRules(ctx, domain.GiftRuleFilter{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListGiftRules_Pagination(t *testing.T) {
	repo := NewGiftRuleRepository()
	ctx := context.Background()

	seed(t, repo, 100, domain.RuleStatusActive)
	mid := seed(t, repo, 200, domain.RuleStatusActive)
	seed(t, repo, 300, domain.RuleStatusActive)

	rules, err := repo.ListGiftRules(ctx, domain.GiftRuleFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, mid.ID, rules[0].ID)

	rules, err = repo.ListGiftRules(ctx, domain.GiftRuleFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestUpdateGiftRule_PreservesCreatedAt(t *testing.T) {
	repo := NewGiftRuleRepository()
	ctx := context.Background()

	rule := seed(t, repo, 200, domain.RuleStatusActive)
	created := rule.CreatedAt

	rule.Status = domain.RuleStatusInactive
	require.NoError(t, repo.UpdateGiftRule(ctx, &rule))

	got, err := repo.GetGiftRuleByID(ctx, rule.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RuleStatusInactive, got.Status)
	assert.Equal(t, created, got.CreatedAt)
}

func TestUpdateGiftRule_UnknownID(t *testing.T) {
	repo := NewGiftRuleRepository()

	rule := domain.GiftRule{ID: uuid.New(), MinCartValue: 100, Status: domain.RuleStatusActive}
	err := repo.UpdateGiftRule(context.Background(), &rule)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeleteGiftRule_SecondDeleteFails(t *testing.T) {
	repo := NewGiftRuleRepository()
	ctx := context.Background()

	rule := seed(t, repo, 200, domain.RuleStatusActive)

	require.NoError(t, repo.DeleteGiftRule(ctx, rule.ID))

	err := repo.DeleteGiftRule(ctx, rule.ID)
	assert.True(t, domain.IsNotFound(err), "repeated delete is an error, not a no-op")

	_, err = repo.GetGiftRuleByID(ctx, rule.ID)
	assert.True(t, domain.IsNotFound(err))
}
