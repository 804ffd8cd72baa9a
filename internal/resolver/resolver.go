// Package resolver computes cart gift eligibility from a subtotal and a
// set of threshold rules. It is pure: no I/O, no shared state, and the
// same inputs always produce the same result regardless of the order the
// rules arrive in, which is what lets it run server-side and against a
// cached snapshot without the two ever disagreeing.
package resolver

import (
	"bytes"
	"fmt"
	"sort"

	"geeta-backend/internal/domain"
)

// Resolve evaluates subtotal (paise) against rules and returns the
// qualifying tiers. The policy is cumulative: every active tier whose
// threshold the subtotal has reached is unlocked, not just the richest
// one. The threshold boundary is inclusive.
//
// Inactive rules are ignored. The input slice is never mutated. A
// negative subtotal fails with InvalidInputError.
func Resolve(subtotal int64, rules []domain.GiftRule) (*domain.Resolution, error) {
	if subtotal < 0 {
		return nil, &domain.InvalidInputError{
			Reason: fmt.Sprintf("subtotal must be non-negative, got %d", subtotal),
		}
	}

	active := make([]domain.GiftRule, 0, len(rules))
	for _, r := range rules {
		if r.Status == domain.RuleStatusActive {
			active = append(active, r)
		}
	}

	// Ascending by threshold, ties by ID byte order. Sorting our own
	// copy keeps the result independent of storage/retrieval order.
	sort.Slice(active, func(i, j int) bool {
		if active[i].MinCartValue != active[j].MinCartValue {
			return active[i].MinCartValue < active[j].MinCartValue
		}
		return bytes.Compare(active[i].ID[:], active[j].ID[:]) < 0
	})

	// The qualifying set is the inclusive prefix.
	cut := sort.Search(len(active), func(i int) bool {
		return active[i].MinCartValue > subtotal
	})

	res := &domain.Resolution{
		Subtotal:  subtotal,
		Qualified: active[:cut:cut],
	}

	if cut > 0 {
		// Primary is the richest tier reached; among equal top
		// thresholds the lowest ID wins.
		top := active[cut-1].MinCartValue
		first := sort.Search(cut, func(i int) bool {
			return active[i].MinCartValue >= top
		})
		primary := active[first]
		res.Primary = &primary
	}

	if cut < len(active) {
		next := active[cut]
		res.NextTier = &next
		res.AmountToNext = next.MinCartValue - subtotal
	}

	return res, nil
}
