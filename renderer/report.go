package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/payments"
)

// Report is the view of a run rendered by RenderReport.
type Report struct {
	Source   string // name of the input, optional
	Records  int
	Applied  int
	Rejected int
	Rows     []Row
	Reasons  []ReasonCount // most frequent first
}

// Row is one account line of a Report.
type Row struct {
	Client    payments.ClientID
	Available string
	Held      string
	Total     string
	Locked    bool
}

// ReasonCount is the number of records rejected for one reason.
type ReasonCount struct {
	Reason string
	Count  int
}

// NewReport builds the report of res.
//
// With a currency code (e.g. "EUR") amounts are displayed in that currency,
// rounded to its minor unit, and the total is the sum of the displayed
// available and held. Without, they are displayed exactly.
func NewReport(res *payments.Result, source, currency string) (*Report, error) {
	var cur *money.Currency
	if currency != "" {
		if cur = money.GetCurrency(strings.ToUpper(currency)); cur == nil {
			return nil, fmt.Errorf("unknown currency %q", currency)
		}
	}

	r := &Report{
		Source:   source,
		Records:  res.Stats.Records,
		Applied:  res.Stats.Applied,
		Rejected: res.Stats.Rejected,
	}
	for _, s := range res.Snapshots {
		row := Row{
			Client:    s.Client,
			Available: s.Available.String(),
			Held:      s.Held.String(),
			Total:     s.Total.String(),
			Locked:    s.Locked,
		}
		if cur != nil {
			available, held := minorUnits(s.Available, cur), minorUnits(s.Held, cur)
			f := cur.Formatter()
			row.Available = f.Format(available)
			row.Held = f.Format(held)
			row.Total = f.Format(available + held)
		}
		r.Rows = append(r.Rows, row)
	}
	for reason, count := range res.Stats.Reasons {
		r.Reasons = append(r.Reasons, ReasonCount{Reason: reason, Count: count})
	}
	slices.SortFunc(r.Reasons, func(a, b ReasonCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Reason, b.Reason)
	})
	return r, nil
}

// minorUnits returns a in the minor unit of cur, rounded half away from zero.
func minorUnits(a payments.Amount, cur *money.Currency) int64 {
	return a.Decimal().Shift(int32(cur.Fraction)).Round(0).IntPart()
}
