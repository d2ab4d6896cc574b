package models

import (
	"fmt"
	"strings"
)

type PaymentMode string

const (
	Cash PaymentMode = "Cash"
	UPI  PaymentMode = "UPI"
	Card PaymentMode = "Card"
	Bank PaymentMode = "Bank"
)

var PaymentModes = []PaymentMode{Cash, UPI, Card, Bank}

// ParsePaymentMode matches case-insensitively and defaults to Cash when empty.
func ParsePaymentMode(s string) (PaymentMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cash, nil
	}
	for _, m := range PaymentModes {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown payment mode %q", s)
}
