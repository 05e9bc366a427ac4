package common

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// GenerateReferralCode returns a 10-character uppercase code derived from a
// UUID, matching the format handed out at signup.
func GenerateReferralCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:10])
}

// GenerateReceiptID returns a gateway receipt identifier. Razorpay caps
// receipts at 40 characters; a raw UUID fits.
func GenerateReceiptID() string {
	return uuid.NewString()
}

// Round2 rounds a currency amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MaskPhone hides the middle of a phone number for team listings,
// e.g. "98765****21".
func MaskPhone(phone string) string {
	if len(phone) < 7 {
		return phone
	}
	return phone[:5] + "****" + phone[len(phone)-2:]
}
