package repository

import (
	"context"
	"database/sql"
)

// SeenPaymentRepo tracks which payment ids have already been appended
// to the ledger CSV, so restarts do not duplicate rows.
type SeenPaymentRepo struct {
	db *sql.DB
}

func NewSeenPaymentRepo(db *sql.DB) *SeenPaymentRepo { return &SeenPaymentRepo{db: db} }

func (r *SeenPaymentRepo) Seen(ctx context.Context, paymentID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM seen_payments WHERE payment_id = ?`, paymentID).Scan(&n)
	return n > 0, err
}

func (r *SeenPaymentRepo) Mark(ctx context.Context, paymentID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO seen_payments(payment_id) VALUES(?)`, paymentID)
	return err
}
