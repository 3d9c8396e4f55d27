/*-------------------------------------------------------------------------
 *
 * policy_test.go
 *    Tests for refund policy evaluation
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/refund/policy_test.go
 *
 *-------------------------------------------------------------------------
 */

package refund

import (
	"errors"
	"testing"

	"github.com/vinovator/shopsmart-retail-agent/internal/db"
)

/* TestEvaluateThreshold tests the approval threshold boundary */
func TestEvaluateThreshold(t *testing.T) {
	policy := NewPolicy(50)

	cases := []struct {
		amount float64
		want   Outcome
	}{
		{30, ImmediateRefund},
		{49.99, ImmediateRefund},
		{50, ImmediateRefund},
		{50.01, NeedsApproval},
		{75, NeedsApproval},
		{0, ImmediateRefund},
	}
	for _, tc := range cases {
		if got := policy.Evaluate(tc.amount); got != tc.want {
			t.Errorf("Evaluate(%v) = %v, want %v", tc.amount, got, tc.want)
		}
	}
}

/* TestCanRefund tests refundability by order status */
func TestCanRefund(t *testing.T) {
	for _, status := range []db.OrderStatus{
		db.OrderStatusPlaced,
		db.OrderStatusShipped,
		db.OrderStatusDelivered,
	} {
		if err := CanRefund(status); err != nil {
			t.Errorf("CanRefund(%s) = %v, want nil", status, err)
		}
	}

	err := CanRefund(db.OrderStatusRefunded)
	if err == nil {
		t.Fatal("CanRefund(refunded) = nil, want error")
	}
	if !errors.Is(err, db.ErrOrderRefunded) {
		t.Errorf("CanRefund(refunded) = %v, want ErrOrderRefunded", err)
	}
}

/* TestParseDecision tests decision string validation */
func TestParseDecision(t *testing.T) {
	if d, err := ParseDecision("approve"); err != nil || d != DecisionApprove {
		t.Errorf("ParseDecision(approve) = %v, %v", d, err)
	}
	if d, err := ParseDecision("reject"); err != nil || d != DecisionReject {
		t.Errorf("ParseDecision(reject) = %v, %v", d, err)
	}
	for _, bad := range []string{"", "Approve", "deny", "approved"} {
		if _, err := ParseDecision(bad); err == nil {
			t.Errorf("ParseDecision(%q) expected error", bad)
		}
	}
}

/* TestNextStatus tests the ticket state machine */
func TestNextStatus(t *testing.T) {
	got, err := NextStatus(db.TicketStatusPending, DecisionApprove)
	if err != nil || got != db.TicketStatusApproved {
		t.Errorf("approve pending = %v, %v", got, err)
	}

	got, err = NextStatus(db.TicketStatusPending, DecisionReject)
	if err != nil || got != db.TicketStatusRejected {
		t.Errorf("reject pending = %v, %v", got, err)
	}

	/* Decided tickets are terminal */
	for _, current := range []db.TicketStatus{db.TicketStatusApproved, db.TicketStatusRejected} {
		for _, d := range []Decision{DecisionApprove, DecisionReject} {
			if _, err := NextStatus(current, d); !errors.Is(err, ErrAlreadyDecided) {
				t.Errorf("NextStatus(%s, %s) = %v, want ErrAlreadyDecided", current, d, err)
			}
		}
	}
}
