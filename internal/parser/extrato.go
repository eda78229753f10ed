package parser

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/movimenta/extrato-ledger/internal/models"
)

// Categorizer assigns a category label to a raw description.
type Categorizer interface {
	Categorize(description string) string
}

// Parser extracts transactions from the text of a Brazilian bank
// statement (extrato). The statement body is a run of triples
//
//	DD/MM/YYYY  description  1.234,56
//
// with no delimiter between entries: a description only ends where the
// next date token begins.
type Parser struct {
	cat Categorizer
	log zerolog.Logger
}

// New returns a Parser that labels every transaction with cat.
func New(cat Categorizer, log zerolog.Logger) *Parser {
	return &Parser{cat: cat, log: log}
}

// Result separates the valid transactions from the candidates that were
// dropped, so callers can surface extraction diagnostics.
type Result struct {
	Transactions []models.Transaction
	Skipped      []models.Skipped
}

var (
	// Column header that opens the transaction table. The c/ç
	// alternation keeps the match diacritic-insensitive.
	tableMarker = regexp.MustCompile(`(?i)data\s+lan[çc]amentos\s+valor`)

	datePattern = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)

	// Amount anchored at the end of a segment: optional minus, dot
	// thousands groups, mandatory comma decimals.
	amountTail = regexp.MustCompile(`(-?\d{1,3}(?:\.\d{3})*,\d{2})\s*$`)

	// Running daily balance lines are subtotals, not transactions.
	dailyBalance = regexp.MustCompile(`(?i)saldo do dia`)
)

// Parse scans the concatenated page texts and returns every transaction
// triple found, in document order. It never fails: unusable candidates
// are dropped into Result.Skipped and an unmatchable input simply
// yields an empty result.
func (p *Parser) Parse(pages []string) *Result {
	full := strings.Join(pages, "\n")

	// Everything before the table header is account boilerplate. If the
	// marker is missing, scan the whole text rather than give up.
	if loc := tableMarker.FindStringIndex(full); loc != nil {
		full = full[loc[1]:]
	}

	res := &Result{}

	// RE2 has no lookahead, so the "description stops at the next date"
	// rule is done by segmenting on date tokens: each candidate is a
	// date plus the text up to the next date, with the amount anchored
	// at the segment's tail.
	dates := datePattern.FindAllStringIndex(full, -1)
	ordinal := 0
	for i, loc := range dates {
		dateText := full[loc[0]:loc[1]]

		end := len(full)
		if i+1 < len(dates) {
			end = dates[i+1][0]
		}
		segment := strings.TrimRight(full[loc[1]:end], " \t\n")

		m := amountTail.FindStringSubmatchIndex(segment)
		if m == nil {
			// No trailing amount before the next date: not a
			// transaction row (e.g. a date inside running text).
			continue
		}
		amountText := segment[m[2]:m[3]]
		desc := strings.TrimSpace(segment[:m[2]])
		if desc == "" {
			continue
		}

		id := ordinal
		ordinal++

		date, err := ParseDate(dateText)
		if err != nil {
			p.log.Debug().Str("date", dateText).Str("description", desc).Msg("dropping candidate: bad date")
			res.Skipped = append(res.Skipped, models.Skipped{
				Position: id, Date: dateText, Amount: amountText, Reason: "bad date",
			})
			continue
		}

		amount, err := ParseAmount(amountText)
		if err != nil {
			p.log.Debug().Str("amount", amountText).Str("description", desc).Msg("dropping candidate: bad amount")
			res.Skipped = append(res.Skipped, models.Skipped{
				Position: id, Date: dateText, Amount: amountText, Reason: "bad amount",
			})
			continue
		}

		if dailyBalance.MatchString(desc) {
			continue
		}

		txn := models.Transaction{
			ID:          id,
			Date:        date,
			Description: desc,
			Amount:      amount,
		}
		if p.cat != nil {
			txn.Category = p.cat.Categorize(desc)
		}
		res.Transactions = append(res.Transactions, txn)
	}

	p.log.Debug().
		Int("transactions", len(res.Transactions)).
		Int("skipped", len(res.Skipped)).
		Msg("statement parsed")

	return res
}
