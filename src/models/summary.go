package models

import "time"

type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// DateGroup holds the transactions of one calendar day.
type DateGroup struct {
	Date         time.Time     `json:"date"`
	Label        string        `json:"label,omitempty"`
	Transactions []Transaction `json:"transactions"`
}

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}
