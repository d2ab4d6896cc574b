// Package ingest validates and normalizes new transactions before they reach
// a store.
package ingest

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"expense-tracker/src/models"
	"expense-tracker/src/store"
)

const dateLayout = "2006-01-02"

// RawForm is a transaction as submitted by a client, before validation.
type RawForm struct {
	Amount      string
	Category    string
	Type        string
	Date        string
	PaymentMode string
	Note        string
}

type Service struct {
	store    store.TransactionStore
	location *time.Location
	// Now is the wall clock used for timestamp composition.
	Now func() time.Time
}

func NewService(s store.TransactionStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: s, location: loc, Now: time.Now}
}

// Submit validates form, normalizes it into a draft and hands it to the store.
func (s *Service) Submit(ctx context.Context, userID string, form RawForm) (*models.Transaction, error) {
	draft, err := s.Normalize(form)
	if err != nil {
		return nil, err
	}
	return s.store.Add(ctx, userID, draft)
}

// Normalize turns a raw form into a draft without persisting it.
func (s *Service) Normalize(form RawForm) (models.TransactionDraft, error) {
	amount, err := ParseAmount(form.Amount)
	if err != nil {
		return models.TransactionDraft{}, err
	}

	category := strings.TrimSpace(form.Category)
	if category == "" {
		return models.TransactionDraft{}, &models.ValidationError{Field: "category", Reason: "is required"}
	}

	typ, err := models.ParseTransactionType(form.Type)
	if err != nil {
		return models.TransactionDraft{}, &models.ValidationError{Field: "type", Reason: "must be expense or income"}
	}

	mode, err := models.ParsePaymentMode(form.PaymentMode)
	if err != nil {
		return models.TransactionDraft{}, &models.ValidationError{Field: "paymentMode", Reason: "must be one of Cash, UPI, Card, Bank"}
	}

	date, err := ComposeDate(form.Date, s.Now(), s.location)
	if err != nil {
		return models.TransactionDraft{}, err
	}

	return models.TransactionDraft{
		Amount:      amount,
		Category:    category,
		Type:        typ,
		Date:        date,
		PaymentMode: mode,
		Note:        strings.TrimSpace(form.Note),
	}, nil
}

// ParseAmount accepts a positive, finite decimal number.
func ParseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &models.ValidationError{Field: "amount", Reason: "is required"}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &models.ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if v <= 0 {
		return 0, &models.ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	return v, nil
}

// ComposeDate resolves the effective timestamp of a new entry.
//
// A calendar date (YYYY-MM-DD) is read in loc and takes the hour, minute and
// second of now, so a backdated entry keeps the time of day it was recorded
// at instead of midnight. An empty value means now. A full RFC 3339 timestamp
// is already composed and is returned unchanged.
func ComposeDate(picked string, now time.Time, loc *time.Location) (time.Time, error) {
	picked = strings.TrimSpace(picked)
	now = now.In(loc)
	if picked == "" {
		return now.Truncate(time.Second), nil
	}

	if d, err := time.ParseInLocation(dateLayout, picked, loc); err == nil {
		return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, loc), nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, picked); err == nil {
		return ts, nil
	}
	return time.Time{}, &models.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD or RFC 3339"}
}
