package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TransactionType has exactly two variants. The zero value is Expense so a
// record that never carried a type reads as an expense.
type TransactionType int

const (
	Expense TransactionType = iota
	Income
)

func (t TransactionType) String() string {
	if t == Income {
		return "income"
	}
	return "expense"
}

// ParseTransactionType accepts "expense", "income" and the empty string
// (legacy records without a type, resolved to Expense).
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "expense":
		return Expense, nil
	case "income":
		return Income, nil
	default:
		return Expense, fmt.Errorf("unknown transaction type %q", s)
	}
}

// NormalizeType resolves a stored type value. Absent or unrecognized values
// become Expense; stores call this once while reading records.
func NormalizeType(stored *string) TransactionType {
	if stored == nil {
		return Expense
	}
	t, err := ParseTransactionType(*stored)
	if err != nil {
		return Expense
	}
	return t
}

func (t TransactionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = Expense
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTransactionType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
