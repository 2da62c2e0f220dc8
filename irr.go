package patrimoine

import "math"

// IRROptions bounds the internal rate of return search.
type IRROptions struct {
	MinRate       float64 // lower bound of the monthly rate bracket
	MaxRate       float64 // upper bound of the monthly rate bracket
	MaxIterations int
	Tolerance     float64 // on the net present value
	MinMonths     int     // minimum history for InvestmentIRR
}

// DefaultIRROptions searches a monthly rate in [-99%, 100%] with at most 100
// bisection steps.
var DefaultIRROptions = IRROptions{
	MinRate:       -0.99,
	MaxRate:       1.0,
	MaxIterations: 100,
	Tolerance:     1e-6,
	MinMonths:     6,
}

// NPV returns the net present value of monthly flows (flows[0] at month 0)
// discounted at the monthly rate.
func NPV(flows []Money, rate float64) float64 {
	return npv(floats(flows), rate)
}

func floats(flows []Money) []float64 {
	res := make([]float64, len(flows))
	for i, f := range flows {
		res[i] = f.float()
	}
	return res
}

func npv(flows []float64, rate float64) float64 {
	var total float64
	discount := 1.0
	for _, f := range flows {
		total += f / discount
		discount *= 1 + rate
	}
	return total
}

// MonthlyIRR returns the monthly rate that zeroes the net present value of
// flows, searched by bisection inside [opts.MinRate, opts.MaxRate].
//
// It returns false when the bracket holds no sign change, when the NPV is not
// a number, or when the iteration budget is exhausted before convergence.
// It always terminates after at most opts.MaxIterations steps.
func MonthlyIRR(flows []Money, opts IRROptions) (float64, bool) {
	if len(flows) < 2 || opts.MaxIterations <= 0 || opts.MinRate <= -1 || opts.MinRate >= opts.MaxRate {
		return 0, false
	}
	fs := floats(flows)
	lo, hi := opts.MinRate, opts.MaxRate
	flo, fhi := npv(fs, lo), npv(fs, hi)
	if math.IsNaN(flo) || math.IsNaN(fhi) {
		return 0, false
	}
	if math.Abs(flo) < opts.Tolerance {
		return lo, true
	}
	if math.Abs(fhi) < opts.Tolerance {
		return hi, true
	}
	if math.Signbit(flo) == math.Signbit(fhi) {
		return 0, false
	}
	for range opts.MaxIterations {
		mid := lo + (hi-lo)/2
		fmid := npv(fs, mid)
		if math.IsNaN(fmid) {
			return 0, false
		}
		// the bracket can collapse below float resolution before the NPV,
		// which is in currency units, gets under the tolerance.
		if math.Abs(fmid) < opts.Tolerance || mid == lo || mid == hi {
			return mid, true
		}
		if math.Signbit(fmid) == math.Signbit(flo) {
			lo, flo = mid, fmid
		} else {
			hi = mid
		}
	}
	return 0, false
}

// IRR returns the annualized internal rate of return of monthly flows,
// (1+r)^12 - 1 expressed in percent, or false when it is not computable.
func IRR(flows []Money, opts IRROptions) (Percent, bool) {
	r, ok := MonthlyIRR(flows, opts)
	if !ok {
		return 0, false
	}
	annual := math.Pow(1+r, 12) - 1
	if math.IsNaN(annual) || math.IsInf(annual, 0) {
		return 0, false
	}
	return Percent(annual * 100), true
}

// InvestmentFlows returns the series -totalInvestment followed by months
// equal monthly inflows.
func InvestmentFlows(totalInvestment, monthly Money, months int) []Money {
	flows := make([]Money, 0, max(months, 0)+1)
	flows = append(flows, totalInvestment.Neg())
	for range max(months, 0) {
		flows = append(flows, monthly)
	}
	return flows
}

// InvestmentIRR returns the annualized IRR of an investment held for months
// months. Less than opts.MinMonths of history, or no investment, is not
// computable.
func InvestmentIRR(totalInvestment, monthlyCashFlow Money, months int, opts IRROptions) (Percent, bool) {
	if months < opts.MinMonths || !totalInvestment.IsPositive() {
		return 0, false
	}
	return IRR(InvestmentFlows(totalInvestment, monthlyCashFlow, months), opts)
}
