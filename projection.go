package patrimoine

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// MaxLoanDuration is the longest loan the projection accepts, in months.
const MaxLoanDuration = 600

// ProjectionOptions configures Project. Zero and unset fields take the
// defaults of DefaultProjectionOptions. A set PastYears of 0 starts the series
// now.
type ProjectionOptions struct {
	Now              Date
	AppreciationRate Optional[float64] // yearly, 0.02 means 2%/year, applies to CASH properties
	PastYears        Optional[int]
	FutureYears      int
	Logger           *zap.Logger
}

// DefaultProjectionOptions samples from 2 years ago to 20 years ahead with a
// 2%/year appreciation.
var DefaultProjectionOptions = ProjectionOptions{
	AppreciationRate: Some(0.02),
	PastYears:        Some(2),
	FutureYears:      20,
}

// ProjectionPoint is the value of the portfolio on one sample date.
type ProjectionPoint struct {
	Date         Date  `json:"date"`
	Value        Money `json:"value"`
	CashValue    Money `json:"cashValue"`    // appreciated value of CASH properties
	CreditEquity Money `json:"creditEquity"` // capital repaid on CREDIT properties
	IsPast       bool  `json:"isPast"`
	IsNow        bool  `json:"isNow"`
}

// Skip is a property left out of the projection, and why.
type Skip struct {
	PropertyID string `json:"propertyId"`
	Reason     string `json:"reason"`
}

// Failure is a property whose valuation failed on one sample date.
type Failure struct {
	PropertyID string `json:"propertyId"`
	Date       Date   `json:"date"`
	Err        string `json:"error"`
}

// Projection is the net-worth time series of a portfolio.
type Projection struct {
	Points []ProjectionPoint `json:"points"`
	// Incomplete lists the properties skipped for missing or unusable data.
	Incomplete []Skip `json:"incomplete,omitempty"`
	// Failures lists valuations that failed unexpectedly, Degraded is set
	// when there is at least one.
	Failures []Failure `json:"failures,omitempty"`
	Degraded bool      `json:"degraded"`
}

// Now returns the point flagged IsNow.
func (p Projection) Now() (ProjectionPoint, bool) {
	for _, pt := range p.Points {
		if pt.IsNow {
			return pt, true
		}
	}
	return ProjectionPoint{}, false
}

// SampleDates returns the quarterly sample dates from pastYears before now to
// futureYears after now, now included.
func SampleDates(now Date, pastYears, futureYears int) []Date {
	dates := make([]Date, 0, 4*(pastYears+futureYears)+1)
	for q := -4 * pastYears; q <= 4*futureYears; q++ {
		dates = append(dates, now.AddMonth(3*q))
	}
	return dates
}

// valuer computes the contribution of one property on one date.
type valuer func(on Date) (Money, error)

// Project builds the quarterly net-worth series of the given properties.
//
// A CASH property is worth its total investment compounded by the
// appreciation rate since acquisition. A CREDIT property contributes the
// capital its loan has repaid. Properties without investment data, and
// loans with an unusable duration, are skipped and listed in Incomplete.
// A failure while valuing one property on one date skips that property for
// that date only and marks the projection as degraded.
func Project(properties []Property, opts ProjectionOptions) Projection {
	opts = opts.withDefaults()
	log := opts.Logger

	var res Projection
	valuers := make([]valuer, len(properties))
	for i := range properties {
		p := &properties[i]
		v, reason := projectionValuer(p, opts)
		if reason != "" {
			res.Incomplete = append(res.Incomplete, Skip{PropertyID: p.ID, Reason: reason})
			log.Info("property left out of projection", zap.String("property", p.ID), zap.String("reason", reason))
			continue
		}
		valuers[i] = v
	}

	res.Points, res.Failures = series(properties, valuers, opts)
	res.Degraded = len(res.Failures) > 0
	return res
}

// series values every property on every sample date. A nil valuer is a
// skipped property.
func series(properties []Property, valuers []valuer, opts ProjectionOptions) (points []ProjectionPoint, failures []Failure) {
	log := opts.Logger
	for _, on := range SampleDates(opts.Now, opts.PastYears.Or(0), opts.FutureYears) {
		pt := ProjectionPoint{
			Date:   on,
			IsPast: on.Before(opts.Now),
			IsNow:  on == opts.Now,
		}
		for i, v := range valuers {
			if v == nil {
				continue
			}
			p := &properties[i]
			value, err := safeValue(v, on)
			if err != nil {
				failures = append(failures, Failure{PropertyID: p.ID, Date: on, Err: err.Error()})
				log.Warn("property valuation failed", zap.String("property", p.ID), zap.Stringer("date", on), zap.Error(err))
				continue
			}
			if p.Financing == Credit {
				pt.CreditEquity = pt.CreditEquity.Add(value)
			} else {
				pt.CashValue = pt.CashValue.Add(value)
			}
		}
		pt.Value = pt.CashValue.Add(pt.CreditEquity)
		points = append(points, pt)
	}
	return points, failures
}

func (o ProjectionOptions) withDefaults() ProjectionOptions {
	if o.Now.IsZero() {
		o.Now = Today()
	}
	if r, ok := o.AppreciationRate.Get(); !ok || math.IsNaN(r) {
		o.AppreciationRate = DefaultProjectionOptions.AppreciationRate
	}
	if y, ok := o.PastYears.Get(); !ok || y < 0 {
		o.PastYears = DefaultProjectionOptions.PastYears
	}
	if o.FutureYears <= 0 {
		o.FutureYears = DefaultProjectionOptions.FutureYears
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// projectionValuer returns the valuation function of p, or the reason why p
// cannot be projected.
func projectionValuer(p *Property, opts ProjectionOptions) (valuer, string) {
	investment := p.Investment.Total()
	if !investment.IsPositive() {
		return nil, "no investment data"
	}
	if p.Financing != Credit {
		acquired := p.acquiredOn(opts.Now)
		rate := opts.AppreciationRate.Or(0)
		return func(on Date) (Money, error) {
			if acquired.After(on) {
				return Money{}, nil
			}
			return appreciate(investment, rate, yearsBetween(acquired, on))
		}, ""
	}

	l := p.Loan
	n := l.Duration.Or(0)
	if n <= 0 || n > MaxLoanDuration {
		return nil, fmt.Sprintf("unusable loan duration %d months", n)
	}
	principal := l.principal()
	rate := l.Rate.Or(0)
	payment := l.MonthlyPayment()
	start := p.loanStart(opts.Now)
	return func(on Date) (Money, error) {
		k := ElapsedMonths(start, on)
		if k >= n {
			return principal, nil
		}
		return CapitalRepaid(principal, rate, n, payment, k).Clamp(principal.Mul(R(0)), principal), nil
	}, ""
}

// appreciate returns value * (1+rate)^years.
func appreciate(value Money, rate, years float64) (Money, error) {
	f := math.Pow(1+rate, years)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Money{}, fmt.Errorf("appreciation factor out of range for rate %v over %v years", rate, years)
	}
	return value.Mul(R(f)), nil
}

// safeValue runs v, turning a panic into an error so one property cannot
// abort the whole series.
func safeValue(v valuer, on Date) (value Money, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return v(on)
}
