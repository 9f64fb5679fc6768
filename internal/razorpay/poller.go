package razorpay

import (
	"context"
	"log"
	"time"

	"github.com/shatwik/finassist/internal/database/repository"
	"github.com/shatwik/finassist/internal/ledger"
)

// Poller runs the background fetch loop. Errors are logged and
// swallowed; the loop only stops when its context is cancelled.
type Poller struct {
	Client   *Client
	Seen     *repository.SeenPaymentRepo
	CSVPath  string
	Interval time.Duration
	Logger   *log.Logger
}

// Run polls until ctx is done. Each cycle appends captured, previously
// unseen payments to the CSV as expense transactions with an empty
// category (pending manual tagging).
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := p.poll(ctx); err != nil {
			p.logf("razorpay poll: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Poller) poll(ctx context.Context) error {
	payments, err := p.Client.ListPayments(ctx)
	if err != nil {
		return err
	}

	var rows []ledger.Transaction
	var ids []string
	for _, pay := range payments {
		if pay.Status != StatusCaptured {
			continue
		}
		seen, err := p.Seen.Seen(ctx, pay.ID)
		if err != nil {
			return err
		}
		if seen {
			continue
		}
		rows = append(rows, ledger.Transaction{
			Timestamp:   time.Unix(pay.CreatedAt, 0),
			Amount:      float64(pay.Amount) / 100,
			Category:    "",
			Type:        "expense",
			Description: pay.Description,
		})
		ids = append(ids, pay.ID)
	}
	if len(rows) == 0 {
		return nil
	}

	// append first, then mark: a crash between the two re-appends at
	// most once (at-least-once is the stated guarantee)
	if err := ledger.Append(p.CSVPath, rows...); err != nil {
		return err
	}
	for _, id := range ids {
		if err := p.Seen.Mark(ctx, id); err != nil {
			return err
		}
	}
	p.logf("razorpay poll: appended %d payment(s)", len(rows))
	return nil
}

func (p *Poller) logf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}
