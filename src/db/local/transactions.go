package local

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"expense-tracker/src/models"
)

const dateLayout = "2006-01-02"

// record is the on-disk shape of a transaction. Records written by older
// clients carry "_id" instead of "id", may lack "type" and "userId", may
// store the amount as a string and the date as a bare calendar date.
type record struct {
	ID          string     `json:"id,omitempty"`
	LegacyID    string     `json:"_id,omitempty"`
	UserID      string     `json:"userId,omitempty"`
	Amount      amount     `json:"amount"`
	Category    string     `json:"category"`
	Type        *string    `json:"type,omitempty"`
	Date        string     `json:"date"`
	PaymentMode string     `json:"paymentMode,omitempty"`
	Note        string     `json:"note,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`

	date time.Time
}

type amount float64

func (a *amount) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = amount(v)
	return nil
}

// entry is one element of the stored list. rec is nil when raw could not be
// decoded; such entries are hidden from readers but written back verbatim.
type entry struct {
	raw json.RawMessage
	rec *record
}

func parseStoredDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("date: missing")
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date: %w", err)
	}
	return t, nil
}

func decodeRecord(raw json.RawMessage, loc *time.Location) (*record, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	if r.Amount <= 0 {
		return nil, fmt.Errorf("amount: %v is not positive", float64(r.Amount))
	}
	date, err := parseStoredDate(r.Date, loc)
	if err != nil {
		return nil, err
	}
	r.date = date
	return &r, nil
}

func (r *record) id() string {
	if r.ID != "" {
		return r.ID
	}
	return r.LegacyID
}

// ownedBy reports whether userID may see the record. Records without an
// owner predate accounts on this device and belong to its profile.
func (r *record) ownedBy(userID string) bool {
	return r.UserID == "" || r.UserID == userID
}

func (r *record) toTransaction(userID string) models.Transaction {
	mode, err := models.ParsePaymentMode(r.PaymentMode)
	if err != nil {
		mode = models.Cash
	}
	t := models.Transaction{
		ID:          r.id(),
		UserID:      r.UserID,
		Amount:      float64(r.Amount),
		Category:    r.Category,
		Type:        models.NormalizeType(r.Type),
		Date:        r.date,
		PaymentMode: mode,
		Note:        r.Note,
	}
	if t.UserID == "" {
		t.UserID = userID
	}
	if r.CreatedAt != nil {
		t.CreatedAt = *r.CreatedAt
	}
	return t
}

func newEntry(t models.Transaction) (entry, error) {
	typ := t.Type.String()
	created := t.CreatedAt
	r := record{
		ID:          t.ID,
		UserID:      t.UserID,
		Amount:      amount(t.Amount),
		Category:    t.Category,
		Type:        &typ,
		Date:        t.Date.Format(time.RFC3339Nano),
		PaymentMode: string(t.PaymentMode),
		Note:        t.Note,
		CreatedAt:   &created,
		date:        t.Date,
	}
	raw, err := json.Marshal(r)
	if err != nil {
		return entry{}, models.NewStorageError("encode transaction", err)
	}
	return entry{raw: raw, rec: &r}, nil
}

// loadEntries decodes each stored record on its own so one damaged record
// never hides the rest of the list.
func (s *Store) loadEntries(ctx context.Context) ([]entry, error) {
	raw, ok, err := s.get(ctx, KeyTransactions)
	if err != nil || !ok {
		return nil, err
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, models.NewStorageError("decode "+KeyTransactions, err)
	}

	entries := make([]entry, 0, len(items))
	for i, item := range items {
		rec, err := decodeRecord(item, s.location)
		if err != nil {
			log.Printf("ERROR: Skipping unreadable record %d in %s: %v", i, KeyTransactions, err)
		}
		entries = append(entries, entry{raw: item, rec: rec})
	}
	return entries, nil
}

func (s *Store) storeEntries(ctx context.Context, entries []entry) error {
	items := make([]json.RawMessage, len(entries))
	for i, e := range entries {
		items[i] = e.raw
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return models.NewStorageError("encode "+KeyTransactions, err)
	}
	return s.put(ctx, KeyTransactions, raw)
}

// Add prepends the new transaction so the stored list is newest first.
func (s *Store) Add(ctx context.Context, userID string, draft models.TransactionDraft) (*models.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}

	t := models.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      draft.Amount,
		Category:    draft.Category,
		Type:        draft.Type,
		Date:        draft.Date,
		PaymentMode: draft.PaymentMode,
		Note:        draft.Note,
		CreatedAt:   time.Now().UTC(),
	}
	if t.PaymentMode == "" {
		t.PaymentMode = models.Cash
	}

	e, err := newEntry(t)
	if err != nil {
		return nil, err
	}
	if err := s.storeEntries(ctx, append([]entry{e}, entries...)); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Store) ListAll(ctx context.Context, userID string) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return nil, err
	}

	txns := make([]models.Transaction, 0, len(entries))
	for _, e := range entries {
		if e.rec != nil && e.rec.ownedBy(userID) {
			txns = append(txns, e.rec.toTransaction(userID))
		}
	}
	return txns, nil
}

func (s *Store) DeleteByID(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return err
	}

	for i, e := range entries {
		if e.rec == nil || e.rec.id() != id {
			continue
		}
		if !e.rec.ownedBy(userID) {
			log.Printf("ERROR: user %s tried to delete transaction %s owned by %s", userID, id, e.rec.UserID)
			return models.ErrUnauthorized
		}
		entries = append(entries[:i], entries[i+1:]...)
		return s.storeEntries(ctx, entries)
	}
	return models.ErrNotFound
}
