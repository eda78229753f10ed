// Package ledger holds the in-memory transaction collection for one
// processed statement and answers filtering and aggregation queries
// over it.
package ledger

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/movimenta/extrato-ledger/internal/models"
)

// Ledger is an ordered transaction sequence in extraction order. It is
// replaced wholesale per processed statement; there is no partial
// update. Concurrent readers are safe against the swap.
type Ledger struct {
	mu   sync.RWMutex
	txns []models.Transaction
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Replace atomically swaps the entire content.
func (l *Ledger) Replace(txns []models.Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.txns = txns
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.Replace(nil)
}

// Snapshot returns a copy of the current content in order.
func (l *Ledger) Snapshot() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Transaction, len(l.txns))
	copy(out, l.txns)
	return out
}

// Len reports the number of stored transactions.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.txns)
}

// Filter returns the transactions satisfying every active predicate in
// the criteria, preserving order. Inactive predicates pass everything,
// so a zero-value criteria returns the full content.
func (l *Ledger) Filter(c models.FilterCriteria) []models.Transaction {
	return Apply(l.Snapshot(), c)
}

// Apply filters an arbitrary transaction slice with the same rules as
// Ledger.Filter. The input is not mutated.
func Apply(txns []models.Transaction, c models.FilterCriteria) []models.Transaction {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]models.Transaction, 0, len(txns))
	for _, t := range txns {
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if c.Category != "" && c.Category != "all" && t.Category != c.Category {
			continue
		}
		if c.Type != "" && c.Type != models.FilterAll && models.TypeFilter(t.Type()) != c.Type {
			continue
		}
		if c.Range != nil && !inRange(t.Date, c.Range) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// inRange compares at day granularity, inclusive on both ends.
// Time-of-day components never cause edge exclusions.
func inRange(date time.Time, r *models.DateRange) bool {
	day := truncateDay(date)
	return !day.Before(truncateDay(r.Start)) && !day.After(truncateDay(r.End))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Aggregate computes totals over a transaction slice in one pass.
// Debits accumulate as absolute values; balance is credits minus
// debits. Pure function of its input.
func Aggregate(txns []models.Transaction) models.Totals {
	totals := models.Totals{
		Credits: decimal.Zero,
		Debits:  decimal.Zero,
		Balance: decimal.Zero,
		Count:   len(txns),
	}
	for _, t := range txns {
		if t.Type() == models.TypeCredit {
			totals.Credits = totals.Credits.Add(t.Amount)
		} else {
			totals.Debits = totals.Debits.Add(t.Amount.Abs())
		}
	}
	totals.Balance = totals.Credits.Sub(totals.Debits)
	return totals
}
