package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TxnType classifies a transaction by the sign of its amount.
type TxnType string

const (
	// TypeCredit is a credit movement (amount >= 0), "entrada" in pt-BR.
	TypeCredit TxnType = "entrada"
	// TypeDebit is a debit movement (amount < 0), "saída" in pt-BR.
	TypeDebit TxnType = "saida"
)

// Label returns the localized display label for the type.
func (t TxnType) Label() string {
	if t == TypeCredit {
		return "Entrada"
	}
	return "Saída"
}

// Transaction represents a single parsed statement movement. It is
// immutable once created; Type is always derived from the amount sign
// and is deliberately not a field, so the two can never disagree.
type Transaction struct {
	ID          int             `json:"id"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// Type derives the transaction type from the amount sign.
// Non-negative amounts are credits.
func (t Transaction) Type() TxnType {
	if t.Amount.IsNegative() {
		return TypeDebit
	}
	return TypeCredit
}

// MarshalJSON includes the derived type so API clients never have to
// re-implement the sign rule.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Type TxnType `json:"type"`
	}{alias(t), t.Type()})
}

// TypeFilter selects transactions by type in a FilterCriteria.
type TypeFilter string

const (
	FilterAll    TypeFilter = "all"
	FilterCredit TypeFilter = "entrada"
	FilterDebit  TypeFilter = "saida"
)

// DateRange is an inclusive day-granularity date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// FilterCriteria is the compound predicate applied to a ledger. Inactive
// fields (empty search, "all" selectors, nil range) pass everything.
type FilterCriteria struct {
	Search   string
	Category string
	Type     TypeFilter
	Range    *DateRange
}

// Totals holds aggregates computed over a transaction slice. Debits is
// the sum of absolute debit amounts.
type Totals struct {
	Credits decimal.Decimal `json:"credits"`
	Debits  decimal.Decimal `json:"debits"`
	Balance decimal.Decimal `json:"balance"`
	Count   int             `json:"count"`
}

// Skipped records one extraction candidate that was dropped, with enough
// context to diagnose the source text.
type Skipped struct {
	Position int    `json:"position"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Reason   string `json:"reason"`
}
