// Package memrepo provides an in-memory GiftRuleRepository used by tests
// and local development. It mirrors the ordering guarantees of the
// Postgres implementation: listings ascend by threshold with ties broken
// by insertion order.
package memrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"geeta-backend/internal/domain"
)

type record struct {
	rule domain.GiftRule
	seq  uint64
}

type GiftRuleRepository struct {
	mu    sync.RWMutex
	rules map[uuid.UUID]record
	seq   uint64
}

func NewGiftRuleRepository() *GiftRuleRepository {
	return &GiftRuleRepository{rules: make(map[uuid.UUID]record)}
}

func (r *GiftRuleRepository) CreateGiftRule(_ context.Context, rule *domain.GiftRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule.ID = uuid.New()
	now := time.Now()
	rule.CreatedAt = now
	rule.UpdatedAt = now

	r.seq++
	r.rules[rule.ID] = record{rule: *rule, seq: r.seq}
	return nil
}

func (r *GiftRuleRepository) GetGiftRuleByID(_ context.Context, id uuid.UUID) (*domain.GiftRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.rules[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "gift rule", ID: id.String()}
	}
	rule := rec.rule
	return &rule, nil
}

func (r *GiftRuleRepository) ListGiftRules(_ context.Context, filter domain.GiftRuleFilter) ([]domain.GiftRule, error) {
	r.mu.RLock()
	records := make([]record, 0, len(r.rules))
	for _, rec := range r.rules {
		if filter.Status != nil && rec.rule.Status != *filter.Status {
			continue
		}
		records = append(records, rec)
	}
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if records[i].rule.MinCartValue != records[j].rule.MinCartValue {
			return records[i].rule.MinCartValue < records[j].rule.MinCartValue
		}
		return records[i].seq < records[j].seq
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(records) {
			records = nil
		} else {
			records = records[filter.Offset:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(records) {
		records = records[:filter.Limit]
	}

	result := make([]domain.GiftRule, len(records))
	for i, rec := range records {
		result[i] = rec.rule
	}
	return result, nil
}

func (r *GiftRuleRepository) CountGiftRules(_ context.Context, filter domain.GiftRuleFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, rec := range r.rules {
		if filter.Status != nil && rec.rule.Status != *filter.Status {
			continue
		}
		n++
	}
	return n, nil
}

func (r *GiftRuleRepository) UpdateGiftRule(_ context.Context, rule *domain.GiftRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.rules[rule.ID]
	if !ok {
		return &domain.NotFoundError{Resource: "gift rule", ID: rule.ID.String()}
	}

	rule.CreatedAt = rec.rule.CreatedAt
	rule.UpdatedAt = time.Now()
	r.rules[rule.ID] = record{rule: *rule, seq: rec.seq}
	return nil
}

func (r *GiftRuleRepository) DeleteGiftRule(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rules[id]; !ok {
		return &domain.NotFoundError{Resource: "gift rule", ID: id.String()}
	}
	delete(r.rules, id)
	return nil
}
