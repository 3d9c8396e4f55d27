/*-------------------------------------------------------------------------
 *
 * email.go
 *    Customer notification delivery
 *
 * Notifications are mocked: instead of talking to a mail provider the
 * notifier writes a structured log entry describing the email that
 * would have been sent.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/notifications/email.go
 *
 *-------------------------------------------------------------------------
 */

package notifications

import (
	"context"
	"fmt"

	"github.com/vinovator/shopsmart-retail-agent/internal/metrics"
)

/* Notifier delivers a message to a customer */
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}

/* EmailNotifier is a mock email sender that logs instead of sending */
type EmailNotifier struct {
	from string
}

func NewEmailNotifier(from string) *EmailNotifier {
	if from == "" {
		from = "support@shopsmart.dev"
	}
	return &EmailNotifier{from: from}
}

func (n *EmailNotifier) Notify(ctx context.Context, recipient, subject, body string) error {
	metrics.InfoWithContext(ctx, "MOCK EMAIL sent", map[string]interface{}{
		"from":    n.from,
		"to":      recipient,
		"subject": subject,
		"body":    body,
	})
	return nil
}

/* RefundApprovedSubject builds the subject line for a refund approval */
func RefundApprovedSubject(orderID string) string {
	return fmt.Sprintf("Your refund for order %s has been approved", orderID)
}

/* RefundApprovedBody builds the body for a refund approval */
func RefundApprovedBody(name string, amount float64) string {
	return fmt.Sprintf("Hi %s, your refund of $%.2f has been approved and will be processed within 3-5 business days.", name, amount)
}

/* RefundRejectedSubject builds the subject line for a refund rejection */
func RefundRejectedSubject(orderID string) string {
	return fmt.Sprintf("Update on your refund request for order %s", orderID)
}

/* RefundRejectedBody builds the body for a refund rejection */
func RefundRejectedBody(name string) string {
	return fmt.Sprintf("Hi %s, after review we are unable to approve your refund request. Please reply to this email if you have questions.", name)
}
