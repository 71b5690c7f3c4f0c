package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func items(statuses ...LineItemStatus) []TestLineItem {
	out := make([]TestLineItem, 0, len(statuses))
	for i, s := range statuses {
		out = append(out, TestLineItem{TestID: string(rune('a' + i)), Status: s})
	}
	return out
}

func TestRollupOrderStatus(t *testing.T) {
	t.Run("all completed wins over everything", func(t *testing.T) {
		status := RollupOrderStatus(items(LineItemStatusCompleted, LineItemStatusCompleted), true)
		assert.Equal(t, OrderStatusCompleted, status)
	})

	t.Run("any completed yields partial", func(t *testing.T) {
		status := RollupOrderStatus(items(LineItemStatusCompleted, LineItemStatusProcessing), true)
		assert.Equal(t, OrderStatusPartial, status)

		status = RollupOrderStatus(items(LineItemStatusCompleted, LineItemStatusCancelled), true)
		assert.Equal(t, OrderStatusPartial, status, "cancelled sibling does not mask the completed one")
	})

	t.Run("all cancelled yields cancelled", func(t *testing.T) {
		status := RollupOrderStatus(items(LineItemStatusCancelled, LineItemStatusCancelled), true)
		assert.Equal(t, OrderStatusCancelled, status)
	})

	t.Run("accession number yields accessioned when nothing is done", func(t *testing.T) {
		status := RollupOrderStatus(items(LineItemStatusCollected, LineItemStatusPending), true)
		assert.Equal(t, OrderStatusAccessioned, status)
	})

	t.Run("no accession number yields pending", func(t *testing.T) {
		status := RollupOrderStatus(items(LineItemStatusPending, LineItemStatusPending), false)
		assert.Equal(t, OrderStatusPending, status)
	})

	t.Run("idempotent", func(t *testing.T) {
		lineItems := items(LineItemStatusCompleted, LineItemStatusProcessing)
		first := RollupOrderStatus(lineItems, true)
		second := RollupOrderStatus(lineItems, true)
		assert.Equal(t, first, second, "re-evaluating without changes must not move the status")
	})
}

func TestRecomputeStatus(t *testing.T) {
	now := time.Now()

	t.Run("rejection is terminal and bypasses the rollup", func(t *testing.T) {
		order := &Order{
			LineItems: items(LineItemStatusCompleted, LineItemStatusCompleted),
			Rejection: &RejectionRecord{Reason: RejectionReasonHemolyzed},
		}
		order.RecomputeStatus(now)
		assert.Equal(t, OrderStatusRejected, order.Status)
		assert.Nil(t, order.ActualCompletionAt, "a rejected order never completes")
	})

	t.Run("entering completed stamps actual completion once", func(t *testing.T) {
		order := &Order{
			AccessionNumber: "ACC240731001",
			LineItems:       items(LineItemStatusCompleted),
		}
		order.RecomputeStatus(now)
		assert.Equal(t, OrderStatusCompleted, order.Status)
		first := order.ActualCompletionAt
		assert.NotNil(t, first)

		order.RecomputeStatus(now.Add(time.Hour))
		assert.Equal(t, first, order.ActualCompletionAt, "completion time must not move on re-evaluation")
	})
}

func TestLineItemTransitions(t *testing.T) {
	t.Run("forward path", func(t *testing.T) {
		li := &TestLineItem{Status: LineItemStatusPending}
		assert.True(t, li.CanTransitionTo(LineItemStatusCollected))
		assert.False(t, li.CanTransitionTo(LineItemStatusProcessing), "pending cannot skip collection")
		assert.False(t, li.CanTransitionTo(LineItemStatusCompleted))
	})

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		for _, from := range []LineItemStatus{LineItemStatusPending, LineItemStatusCollected, LineItemStatusProcessing} {
			li := &TestLineItem{Status: from}
			assert.True(t, li.CanTransitionTo(LineItemStatusCancelled), "cancel should be allowed from %s", from)
		}
	})

	t.Run("terminal states accept nothing", func(t *testing.T) {
		for _, from := range []LineItemStatus{LineItemStatusCompleted, LineItemStatusCancelled} {
			li := &TestLineItem{Status: from}
			for _, target := range []LineItemStatus{LineItemStatusPending, LineItemStatusCollected, LineItemStatusProcessing, LineItemStatusCompleted, LineItemStatusCancelled} {
				assert.False(t, li.CanTransitionTo(target), "%s -> %s must be rejected", from, target)
			}
		}
	})

	t.Run("transition side effects stamp timestamps", func(t *testing.T) {
		now := time.Now()
		li := &TestLineItem{Status: LineItemStatusPending}

		li.ApplyTransition(LineItemStatusCollected, "tech-1", now)
		assert.Equal(t, LineItemStatusCollected, li.Status)
		assert.Equal(t, "tech-1", li.CollectedBy)
		assert.NotNil(t, li.CollectedAt)

		li.ApplyTransition(LineItemStatusProcessing, "tech-1", now)
		assert.NotNil(t, li.ProcessingStartedAt)
		assert.Nil(t, li.ProcessingEndedAt)

		li.ApplyTransition(LineItemStatusCompleted, "tech-1", now)
		assert.NotNil(t, li.ProcessingEndedAt)
	})
}

func TestTurnaroundHours(t *testing.T) {
	accessioned := time.Date(2024, 7, 31, 8, 0, 0, 0, time.UTC)

	t.Run("undefined until both timestamps exist", func(t *testing.T) {
		order := &Order{AccessionedAt: &accessioned}
		_, ok := order.TurnaroundHours()
		assert.False(t, ok)
	})

	t.Run("floored to whole hours", func(t *testing.T) {
		completed := accessioned.Add(26*time.Hour + 45*time.Minute)
		order := &Order{AccessionedAt: &accessioned, ActualCompletionAt: &completed}
		hours, ok := order.TurnaroundHours()
		assert.True(t, ok)
		assert.Equal(t, 26, hours, "partial hours are dropped, not rounded")
	})
}

func TestIsConditionAcceptable(t *testing.T) {
	for _, condition := range []string{"hemolyzed", "clotted", "insufficient", "contaminated"} {
		assert.False(t, IsConditionAcceptable(condition), "%s must be unacceptable", condition)
	}
	for _, condition := range []string{"good", "icteric", "lipemic", ""} {
		assert.True(t, IsConditionAcceptable(condition), "%s must be acceptable", condition)
	}
}

func TestIsSpecimenExpired(t *testing.T) {
	collected := time.Date(2024, 7, 28, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsSpecimenExpired(collected, collected.Add(71*time.Hour)), "71h is inside the window")
	assert.False(t, IsSpecimenExpired(collected, collected.Add(72*time.Hour)), "exactly 72h is still inside the window")
	assert.True(t, IsSpecimenExpired(collected, collected.Add(73*time.Hour)), "73h is expired")
}
