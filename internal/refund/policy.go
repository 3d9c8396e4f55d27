/*-------------------------------------------------------------------------
 *
 * policy.go
 *    Refund policy evaluation
 *
 * Pure policy rules for refunds: which orders are refundable, whether
 * an amount is small enough to refund immediately, and the approval
 * state machine for tickets that need a human decision.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/refund/policy.go
 *
 *-------------------------------------------------------------------------
 */

package refund

import (
	"errors"
	"fmt"

	"github.com/vinovator/shopsmart-retail-agent/internal/db"
)

/* ErrAlreadyDecided is returned when a decision is applied to a
 * ticket that is no longer pending */
var ErrAlreadyDecided = errors.New("ticket already decided")

/* Outcome is the result of evaluating a refund request against policy */
type Outcome string

const (
	/* ImmediateRefund means the amount is at or under the approval
	 * threshold and the order can be refunded right away */
	ImmediateRefund Outcome = "immediate_refund"

	/* NeedsApproval means a ticket must be opened for a human agent */
	NeedsApproval Outcome = "needs_approval"
)

/* Decision is a human agent's verdict on a pending ticket */
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

/* ParseDecision validates a decision string from an API request */
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApprove, DecisionReject:
		return Decision(s), nil
	default:
		return "", fmt.Errorf("invalid decision: value='%s', expected='approve' or 'reject'", s)
	}
}

/* Policy holds the tunable refund rules */
type Policy struct {
	/* Threshold is the maximum amount refunded without approval */
	Threshold float64
}

func NewPolicy(threshold float64) Policy {
	return Policy{Threshold: threshold}
}

/* Evaluate decides whether an amount can be refunded immediately.
 * Amounts at the threshold exactly are refunded immediately. */
func (p Policy) Evaluate(amount float64) Outcome {
	if amount <= p.Threshold {
		return ImmediateRefund
	}
	return NeedsApproval
}

/* CanRefund checks that an order in the given status may be refunded.
 * Any order that has not already been refunded qualifies. */
func CanRefund(status db.OrderStatus) error {
	if status == db.OrderStatusRefunded {
		return fmt.Errorf("%w: status='%s'", db.ErrOrderRefunded, status)
	}
	return nil
}

/* NextStatus applies a decision to a ticket status, enforcing that
 * approved and rejected are terminal */
func NextStatus(current db.TicketStatus, d Decision) (db.TicketStatus, error) {
	if current != db.TicketStatusPending {
		return current, fmt.Errorf("%w: status='%s'", ErrAlreadyDecided, current)
	}
	switch d {
	case DecisionApprove:
		return db.TicketStatusApproved, nil
	case DecisionReject:
		return db.TicketStatusRejected, nil
	default:
		return current, fmt.Errorf("invalid decision: value='%s'", d)
	}
}
