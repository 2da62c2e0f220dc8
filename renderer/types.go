package renderer

import (
	"slices"

	patrimoine "github.com/timaelia1-mgt/patrimoine-immo-sub000"
)

// PropertyView is the detailed report of one property.
type PropertyView struct {
	patrimoine.PropertySummary
	On       patrimoine.Date
	Property *patrimoine.Property
	Loan     *LoanView // nil for a CASH property
}

// LoanView summarizes the loan of a CREDIT property.
type LoanView struct {
	Principal     patrimoine.Money `json:"principal"`
	Rate          float64          `json:"rate"` // annual, in percent
	Duration      int              `json:"duration"`
	Start         patrimoine.Date  `json:"start"`
	End           patrimoine.Date  `json:"end"`
	Payment       patrimoine.Money `json:"payment"`
	Outstanding   patrimoine.Money `json:"outstanding"`
	Repaid        patrimoine.Money `json:"repaid"`
	TotalInterest patrimoine.Money `json:"totalInterest"`
}

// NewPropertyView gathers the report of property id on the given date.
func NewPropertyView(pf *patrimoine.Portfolio, id string, on patrimoine.Date) (*PropertyView, bool) {
	p, ok := pf.Property(id)
	if !ok {
		return nil, false
	}
	s, _ := pf.Describe(id, on)
	v := &PropertyView{PropertySummary: s, On: on, Property: p}
	if p.Financing != patrimoine.Credit {
		return v, true
	}
	rows := p.Schedule(on)
	lv := &LoanView{
		Principal:     p.Loan.Principal.Or(patrimoine.M(0, pf.Currency)),
		Rate:          p.Loan.Rate.Or(0),
		Duration:      p.Loan.Duration.Or(0),
		Payment:       p.LoanPayment(),
		Outstanding:   s.Outstanding,
		TotalInterest: patrimoine.TotalInterest(rows),
	}
	lv.Repaid = lv.Principal.Sub(lv.Outstanding)
	if len(rows) > 0 {
		lv.Start = rows[0].Due.AddMonth(-1)
		lv.End = rows[len(rows)-1].Due
	}
	v.Loan = lv
	return v, true
}

// LotsView is the per lot breakdown of a property.
type LotsView struct {
	Property *patrimoine.Property
	Lots     []patrimoine.LotReport
}

// ScheduleView is the amortization table of a property's loan.
type ScheduleView struct {
	Property      *patrimoine.Property
	Payment       patrimoine.Money
	TotalInterest patrimoine.Money
	Rows          []patrimoine.Installment
}

// CollectionView is the realized collection of a property over a range of months.
type CollectionView struct {
	Property *patrimoine.Property
	patrimoine.Collection
}

// ProjectionView is the net worth projection of the portfolio.
type ProjectionView struct {
	patrimoine.Projection
	// Yearly keeps one point per year, plus the current one.
	Yearly bool
}

// Rows returns the points to print.
func (v *ProjectionView) Rows() []patrimoine.ProjectionPoint {
	if !v.Yearly {
		return v.Points
	}
	now := slices.IndexFunc(v.Points, func(pt patrimoine.ProjectionPoint) bool { return pt.IsNow })
	if now < 0 {
		return v.Points
	}
	var res []patrimoine.ProjectionPoint
	for i, pt := range v.Points {
		// points are quarterly
		if (i-now)%4 == 0 {
			res = append(res, pt)
		}
	}
	return res
}
