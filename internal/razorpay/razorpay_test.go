package razorpay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shatwik/finassist/internal/database"
	"github.com/shatwik/finassist/internal/database/repository"
	"github.com/shatwik/finassist/internal/ledger"
)

const paymentsJSON = `{
  "items": [
    {"id": "pay_1", "amount": 49900, "description": "coffee", "status": "captured", "created_at": 1709287200},
    {"id": "pay_2", "amount": 120000, "description": "groceries", "status": "captured", "created_at": 1709290800},
    {"id": "pay_3", "amount": 5000, "description": "refunded order", "status": "failed", "created_at": 1709294400}
  ]
}`

func paymentServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payments", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key_test", user)
		require.Equal(t, "secret_test", pass)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(paymentsJSON))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListPayments(t *testing.T) {
	srv := paymentServer(t)
	c := NewClient(srv.URL, "key_test", "secret_test")

	payments, err := c.ListPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 3)
	require.Equal(t, "pay_1", payments[0].ID)
	require.Equal(t, int64(49900), payments[0].Amount)
	require.Equal(t, StatusCaptured, payments[0].Status)
}

func TestListPaymentsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "bad", "creds")
	_, err := c.ListPayments(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

func testSeenRepo(t *testing.T) *repository.SeenPaymentRepo {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return repository.NewSeenPaymentRepo(db)
}

func TestPollerAppendsCapturedOnce(t *testing.T) {
	srv := paymentServer(t)
	csvPath := filepath.Join(t.TempDir(), "payments.csv")
	p := &Poller{
		Client:  NewClient(srv.URL, "key_test", "secret_test"),
		Seen:    testSeenRepo(t),
		CSVPath: csvPath,
	}

	require.NoError(t, p.poll(context.Background()))

	res, err := ledger.LoadFile(csvPath)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2) // failed payment is skipped
	require.Equal(t, 499.0, res.Transactions[0].Amount)
	require.Equal(t, "expense", res.Transactions[0].Type)
	require.Empty(t, res.Transactions[0].Category)

	// a second cycle sees nothing new
	require.NoError(t, p.poll(context.Background()))
	res, err = ledger.LoadFile(csvPath)
	require.NoError(t, err)
	require.Len(t, res.Transactions, 2)
}

func TestPollerRunStopsOnCancel(t *testing.T) {
	srv := paymentServer(t)
	p := &Poller{
		Client:   NewClient(srv.URL, "key_test", "secret_test"),
		Seen:     testSeenRepo(t),
		CSVPath:  filepath.Join(t.TempDir(), "payments.csv"),
		Interval: time.Hour,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}
