package models

import (
	"strings"
	"time"
)

type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	PaymentMode PaymentMode     `json:"paymentMode"`
	Note        string          `json:"note,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TransactionDraft is a normalized transaction that has not been persisted yet.
// Stores assign ID and CreatedAt.
type TransactionDraft struct {
	Amount      float64
	Category    string
	Type        TransactionType
	Date        time.Time
	PaymentMode PaymentMode
	Note        string
}

// Validate checks the fields every store requires before persisting.
func (d TransactionDraft) Validate() error {
	if d.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if strings.TrimSpace(d.Category) == "" {
		return &ValidationError{Field: "category", Reason: "is required"}
	}
	return nil
}

func (t Transaction) IsIncome() bool {
	return t.Type == Income
}
