// Package payments resolves the redirect-based payment flow: the checkout
// link is minted upstream at booking time, and the gateway's only job on the
// way back is a one-shot resolution of the return callback.
package payments

import "strings"

// Outcome is the normalized result of a payment return callback.
type Outcome string

const (
	OutcomePaid      Outcome = "paid"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// ResolveOutcome normalizes the upstream status string. The gateway reports
// PAID/CANCELLED; anything else, including an empty status, counts as failed.
func ResolveOutcome(status string) Outcome {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "PAID", "SUCCESS":
		return OutcomePaid
	case "CANCELLED", "CANCELED":
		return OutcomeCancelled
	default:
		return OutcomeFailed
	}
}
