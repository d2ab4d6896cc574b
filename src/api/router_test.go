package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"expense-tracker/src/auth"
	"expense-tracker/src/db"
	"expense-tracker/src/db/local"
	"expense-tracker/src/ingest"
	"expense-tracker/src/models"
)

var fixedNow = time.Date(2024, time.March, 20, 18, 30, 0, 0, time.UTC)

func newTestServer(t *testing.T, demo bool) *httptest.Server {
	t.Helper()
	s, err := local.Open(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("local.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	cache, err := db.NewCache()
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	t.Cleanup(cache.Close)
	txns := db.NewCachedStore(s, cache)

	svc := ingest.NewService(txns, time.UTC)
	svc.Now = func() time.Time { return fixedNow }

	srv := httptest.NewServer(NewRouter(Deps{
		Auth:           auth.NewLocalProvider(s, bcrypt.MinCost),
		Transactions:   txns,
		Ingest:         svc,
		Now:            func() time.Time { return fixedNow },
		AllowedOrigins: []string{"*"},
		Demo:           demo,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: status = %d, want %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want)
	}
}

func register(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp := do(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "secret1",
	})
	expectStatus(t, resp, http.StatusOK)
	var ar models.AuthResponse
	decode(t, resp, &ar)
	if ar.Token == "" || ar.User.Email != "asha@example.com" {
		t.Fatalf("unexpected auth response: %+v", ar)
	}
	return ar.Token
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, false)
	resp := do(t, srv, http.MethodGet, "/health", "", nil)
	expectStatus(t, resp, http.StatusOK)
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t, false)
	token := register(t, srv)

	resp := do(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": "secret1",
	})
	expectStatus(t, resp, http.StatusBadRequest)
	var msg map[string]string
	decode(t, resp, &msg)
	if msg["msg"] != "User already exists" {
		t.Fatalf("msg = %q", msg["msg"])
	}

	resp = do(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@example.com"})
	expectStatus(t, resp, http.StatusBadRequest)
	decode(t, resp, &msg)
	if msg["msg"] != "Please enter all fields" {
		t.Fatalf("msg = %q", msg["msg"])
	}

	resp = do(t, srv, http.MethodGet, "/api/auth/user", token, nil)
	expectStatus(t, resp, http.StatusOK)
	var u models.User
	decode(t, resp, &u)
	if u.Name != "Asha" {
		t.Fatalf("user = %+v", u)
	}

	resp = do(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "asha@example.com", "password": "nope123"})
	expectStatus(t, resp, http.StatusBadRequest)

	resp = do(t, srv, http.MethodPost, "/api/auth/logout", token, nil)
	expectStatus(t, resp, http.StatusOK)
	resp = do(t, srv, http.MethodGet, "/api/auth/user", token, nil)
	expectStatus(t, resp, http.StatusBadRequest)

	resp = do(t, srv, http.MethodGet, "/api/auth/user", "", nil)
	expectStatus(t, resp, http.StatusUnauthorized)
}

func TestExpenseLifecycle(t *testing.T) {
	srv := newTestServer(t, false)
	token := register(t, srv)

	entries := []map[string]any{
		{"amount": 5000, "category": "Salary", "type": "income", "date": "2024-03-01", "paymentMode": "Bank"},
		{"amount": 120, "category": "Food", "date": "2024-03-05", "paymentMode": "UPI", "note": "lunch"},
		{"amount": "30", "category": "Food", "date": "2024-03-05"},
		{"amount": 900, "category": "Rent", "date": "2024-02-28"},
	}
	var created []models.Transaction
	for _, e := range entries {
		resp := do(t, srv, http.MethodPost, "/api/expenses", token, e)
		expectStatus(t, resp, http.StatusOK)
		var tx models.Transaction
		decode(t, resp, &tx)
		created = append(created, tx)
	}
	if created[1].Date.Hour() != 18 || created[1].Date.Minute() != 30 {
		t.Fatalf("backdated entry did not take the current time of day: %v", created[1].Date)
	}
	if created[2].PaymentMode != models.Cash || created[2].Type != models.Expense {
		t.Fatalf("defaults not applied: %+v", created[2])
	}

	resp := do(t, srv, http.MethodPost, "/api/expenses", token, map[string]any{"category": "Food"})
	expectStatus(t, resp, http.StatusBadRequest)
	var msg map[string]string
	decode(t, resp, &msg)
	if msg["msg"] != "Amount and Category are required" {
		t.Fatalf("msg = %q", msg["msg"])
	}

	resp = do(t, srv, http.MethodGet, "/api/expenses", token, nil)
	expectStatus(t, resp, http.StatusOK)
	var list []models.Transaction
	decode(t, resp, &list)
	if len(list) != 4 {
		t.Fatalf("expected 4 transactions, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].Date.After(list[i-1].Date) {
			t.Fatalf("list not sorted by date desc")
		}
	}

	resp = do(t, srv, http.MethodGet, "/api/expenses/summary?month=2024-03", token, nil)
	expectStatus(t, resp, http.StatusOK)
	var s models.Summary
	decode(t, resp, &s)
	if s.Income != 5000 || s.Expense != 150 || s.Balance != 4850 {
		t.Fatalf("summary = %+v", s)
	}

	resp = do(t, srv, http.MethodGet, "/api/expenses/summary?month=March", token, nil)
	expectStatus(t, resp, http.StatusBadRequest)

	resp = do(t, srv, http.MethodGet, "/api/expenses/view?month=2024-03&paymentMode=UPI,Cash", token, nil)
	expectStatus(t, resp, http.StatusOK)
	var groups []models.DateGroup
	decode(t, resp, &groups)
	if len(groups) != 1 || len(groups[0].Transactions) != 2 || groups[0].Label != "05 Mar 2024" {
		t.Fatalf("view = %+v", groups)
	}

	resp = do(t, srv, http.MethodGet, "/api/expenses/breakdown", token, nil)
	expectStatus(t, resp, http.StatusOK)
	var totals []models.CategoryTotal
	decode(t, resp, &totals)
	if len(totals) != 2 || totals[0].Category != "Rent" || totals[1].Total != 150 {
		t.Fatalf("breakdown = %+v", totals)
	}

	resp = do(t, srv, http.MethodGet, "/api/expenses/breakdown?month=2024-03", token, nil)
	expectStatus(t, resp, http.StatusOK)
	decode(t, resp, &totals)
	if len(totals) != 1 || totals[0].Category != "Food" {
		t.Fatalf("month breakdown = %+v", totals)
	}

	resp = do(t, srv, http.MethodGet, "/api/expenses/breakdown/chart.png?month=2024-03", token, nil)
	expectStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("chart content type = %q", ct)
	}

	resp = do(t, srv, http.MethodGet, "/api/expenses/breakdown/chart.png?month=2023-01", token, nil)
	expectStatus(t, resp, http.StatusNotFound)

	resp = do(t, srv, http.MethodGet, "/api/expenses/statement?month=2024-03", token, nil)
	expectStatus(t, resp, http.StatusOK)
	var body bytes.Buffer
	body.ReadFrom(resp.Body)
	if !strings.Contains(body.String(), "March 2024") || strings.Contains(body.String(), "Rent") {
		t.Fatalf("statement:\n%s", body.String())
	}

	resp = do(t, srv, http.MethodDelete, "/api/expenses/"+created[3].ID, token, nil)
	expectStatus(t, resp, http.StatusOK)
	resp = do(t, srv, http.MethodDelete, "/api/expenses/"+created[3].ID, token, nil)
	expectStatus(t, resp, http.StatusNotFound)

	resp = do(t, srv, http.MethodGet, "/api/expenses", token, nil)
	decode(t, resp, &list)
	if len(list) != 3 {
		t.Fatalf("expected 3 transactions after delete, got %d", len(list))
	}
}

func TestCategories(t *testing.T) {
	srv := newTestServer(t, false)
	resp := do(t, srv, http.MethodGet, "/api/categories", "", nil)
	expectStatus(t, resp, http.StatusOK)
	var c models.CategoryCatalog
	decode(t, resp, &c)
	if len(c.Expense) != 9 || len(c.Income) != 5 || len(c.PaymentModes) != 4 {
		t.Fatalf("catalog = %+v", c)
	}
}

func TestDemoModeBlocksWrites(t *testing.T) {
	srv := newTestServer(t, true)
	token := register(t, srv)

	resp := do(t, srv, http.MethodPost, "/api/expenses", token, map[string]any{"amount": 10, "category": "Food"})
	expectStatus(t, resp, http.StatusForbidden)

	resp = do(t, srv, http.MethodGet, "/api/expenses", token, nil)
	expectStatus(t, resp, http.StatusOK)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	srv := newTestServer(t, false)
	resp := do(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha", "email": "asha@example.com", "password": strings.Repeat("p", 80),
	})
	expectStatus(t, resp, http.StatusBadRequest)
	var msg map[string]string
	decode(t, resp, &msg)
	if !strings.HasPrefix(msg["msg"], "password ") {
		t.Fatalf("msg = %q", msg["msg"])
	}
}

func TestCreateExpenseEmptyAmountIsMissing(t *testing.T) {
	srv := newTestServer(t, false)
	token := register(t, srv)

	for _, amount := range []any{"", nil, "  "} {
		resp := do(t, srv, http.MethodPost, "/api/expenses", token, map[string]any{"amount": amount, "category": "Food"})
		expectStatus(t, resp, http.StatusBadRequest)
		var msg map[string]string
		decode(t, resp, &msg)
		if msg["msg"] != "Amount and Category are required" {
			t.Fatalf("amount %#v: msg = %q", amount, msg["msg"])
		}
	}

	resp := do(t, srv, http.MethodPost, "/api/expenses", token, map[string]any{"amount": "12.5", "category": "Food", "date": "2024-03-05"})
	expectStatus(t, resp, http.StatusOK)
	var tx models.Transaction
	decode(t, resp, &tx)
	if tx.Amount != 12.5 {
		t.Fatalf("amount = %v", tx.Amount)
	}
}
