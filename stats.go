package payments

import (
	"maps"
)

// Stats counts what happened to the records of a run.
type Stats struct {
	Records  int            // records read, rejected ones included
	Applied  int            // transactions that changed, or were accepted by, an account
	Rejected int            // records skipped
	Reasons  map[string]int // rejected records by reason
}

func newStats() Stats {
	return Stats{Reasons: make(map[string]int)}
}

func (s *Stats) reject(err error) {
	s.Rejected++
	reason := Reason(err)
	if reason == nil {
		s.Reasons[err.Error()]++
		return
	}
	s.Reasons[reason.Error()]++
}

func (s *Stats) merge(o Stats) {
	s.Records += o.Records
	s.Applied += o.Applied
	s.Rejected += o.Rejected
	for k, v := range o.Reasons {
		s.Reasons[k] += v
	}
}

func (s Stats) clone() Stats {
	s.Reasons = maps.Clone(s.Reasons)
	return s
}

// MarshalJSON writes the counters, reasons in a stable order.
func (s Stats) MarshalJSON() ([]byte, error) {
	order := make([]string, 0, len(reasons))
	for _, r := range reasons {
		order = append(order, r.Error())
	}
	var w jsonObjectWriter
	w.Append("records", s.Records)
	w.Append("applied", s.Applied)
	w.Append("rejected", s.Rejected)
	w.AppendMap("reasons", s.Reasons, order)
	return w.MarshalJSON()
}
