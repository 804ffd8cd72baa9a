// Package rulecache keeps a local snapshot of the active gift rules so
// eligibility can be resolved without a database round-trip on every
// cart change. Snapshots are immutable slices replaced wholesale: a
// reader that obtained the old snapshot keeps resolving against it while
// a refresh publishes the new one, so no reader ever observes a partial
// rule set.
package rulecache

import (
	"context"
	"time"

	"geeta-backend/internal/domain"
	"geeta-backend/pkg/cache"
)

const (
	// Fresh snapshot, TTL-bound and dropped on every mutation.
	freshKey = "giftrules:active"
	// Last-known-good snapshot, never expires. Served with a stale
	// signal when a refresh fails transiently.
	lkgKey = "giftrules:active:lkg"
)

type RuleCache struct {
	repo  domain.GiftRuleRepository
	store cache.CacheService
	ttl   time.Duration
}

func New(repo domain.GiftRuleRepository, store cache.CacheService, ttl time.Duration) *RuleCache {
	return &RuleCache{repo: repo, store: store, ttl: ttl}
}

// Refresh fetches the full active rule set from the store and atomically
// replaces both snapshots. The repository returns rules already sorted
// ascending by threshold.
func (c *RuleCache) Refresh(ctx context.Context) ([]domain.GiftRule, error) {
	status := domain.RuleStatusActive
	rules, err := c.repo.ListGiftRules(ctx, domain.GiftRuleFilter{Status: &status})
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = []domain.GiftRule{}
	}

	c.store.Set(freshKey, rules, c.ttl)
	c.store.Set(lkgKey, rules, cache.NoExpiration)
	return rules, nil
}

// Cached returns the most recent fresh snapshot. The second return is
// false when no snapshot exists (never fetched, invalidated, or
// expired); the caller should trigger Refresh.
func (c *RuleCache) Cached() ([]domain.GiftRule, bool) {
	if v, found := c.store.Get(freshKey); found {
		return v.([]domain.GiftRule), true
	}
	return nil, false
}

// ActiveRules returns the active rule set, refreshing when the fresh
// snapshot is missing. If the refresh fails transiently it falls back to
// the last-known-good snapshot and reports stale=true rather than
// failing the resolution path outright.
func (c *RuleCache) ActiveRules(ctx context.Context) (rules []domain.GiftRule, stale bool, err error) {
	if rules, ok := c.Cached(); ok {
		return rules, false, nil
	}

	rules, err = c.Refresh(ctx)
	if err == nil {
		return rules, false, nil
	}

	if domain.IsTransient(err) {
		if v, found := c.store.Get(lkgKey); found {
			return v.([]domain.GiftRule), true, nil
		}
	}
	return nil, false, err
}

// Invalidate drops the fresh snapshot. Every store mutation calls this
// before its effects are expected to be visible, so an administrator
// sees their own change on the next read. The last-known-good snapshot
// is kept as the transient-failure fallback.
func (c *RuleCache) Invalidate() {
	c.store.Delete(freshKey)
}
