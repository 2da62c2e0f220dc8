package patrimoine

import "math"

// This file is the only place where loan arithmetic lives. Cash flow,
// rentability, projection and the reports all call through it.

// monthlyRate converts an annual rate in percent into a monthly rate.
func monthlyRate(annualRatePct float64) float64 {
	if math.IsNaN(annualRatePct) || annualRatePct <= 0 {
		return 0
	}
	return annualRatePct / 100 / 12
}

// MonthlyPayment returns the constant monthly payment that repays principal
// over durationMonths at annualRatePct (5.2 means 5.2%/year).
//
// A zero rate amortizes linearly. A duration <= 0 is not computable and
// returns 0.
func MonthlyPayment(principal Money, annualRatePct float64, durationMonths int) Money {
	if durationMonths <= 0 || !principal.IsPositive() {
		return principal.Mul(R(0))
	}
	r := monthlyRate(annualRatePct)
	if r == 0 {
		return principal.Div(durationMonths)
	}
	g := math.Pow(1+r, float64(durationMonths))
	return principal.Mul(R(r * g / (g - 1)))
}

// RemainingPrincipal returns the capital still owed after elapsedMonths
// payments of monthlyPayment.
//
// elapsedMonths <= 0 returns principal, elapsedMonths >= durationMonths
// returns 0. The result is clamped into [0, principal]. A zero rate, as well
// as an unknown one, amortizes linearly. A duration <= 0 is not computable and
// leaves the full principal remaining.
func RemainingPrincipal(principal Money, annualRatePct float64, durationMonths int, monthlyPayment Money, elapsedMonths int) Money {
	zero := principal.Mul(R(0))
	switch {
	case durationMonths <= 0 || elapsedMonths <= 0:
		return principal
	case elapsedMonths >= durationMonths:
		return zero
	}
	r := monthlyRate(annualRatePct)
	var remaining Money
	if r == 0 {
		remaining = principal.Sub(principal.Div(durationMonths).Times(elapsedMonths))
	} else {
		g := math.Pow(1+r, float64(elapsedMonths))
		remaining = principal.Mul(R(g)).Sub(monthlyPayment.Mul(R((g - 1) / r)))
	}
	return remaining.Clamp(zero, principal)
}

// CapitalRepaid returns principal - RemainingPrincipal, the equity built by
// the loan after elapsedMonths.
func CapitalRepaid(principal Money, annualRatePct float64, durationMonths int, monthlyPayment Money, elapsedMonths int) Money {
	return principal.Sub(RemainingPrincipal(principal, annualRatePct, durationMonths, monthlyPayment, elapsedMonths))
}

// ElapsedMonths returns the number of whole months from start to asOf. A
// month counts once its day-of-month is reached. A start in the future, or a
// zero date, returns 0 (not yet started).
func ElapsedMonths(start, asOf Date) int {
	if start.IsZero() || asOf.IsZero() {
		return 0
	}
	n := (asOf.Year()-start.Year())*12 + int(asOf.Month()-start.Month())
	if asOf.Day() < start.Day() && asOf.Day() < daysIn(asOf) {
		n--
	}
	return max(0, n)
}

// daysIn returns the number of days in d's month.
func daysIn(d Date) int { return NewDate(d.Year(), d.Month()+1, 0).Day() }

// yearsBetween returns the age in years, counted in whole months.
func yearsBetween(start, asOf Date) float64 { return float64(ElapsedMonths(start, asOf)) / 12 }

// principal returns the loan principal, 0 when unset.
func (l Loan) principal() Money { return l.Principal.Or(Money{}) }

// MonthlyPayment returns the bank-quoted payment when known, the annuity
// computed from the loan terms otherwise.
func (l Loan) MonthlyPayment() Money {
	if p, ok := l.Payment.Get(); ok && p.IsPositive() {
		return p
	}
	return MonthlyPayment(l.principal(), l.Rate.Or(0), l.Duration.Or(0))
}

// Remaining returns the capital still owed on the given date.
func (l Loan) Remaining(on Date) Money {
	return RemainingPrincipal(l.principal(), l.Rate.Or(0), l.Duration.Or(0), l.MonthlyPayment(), ElapsedMonths(l.Start, on))
}

// Repaid returns the capital already repaid on the given date.
func (l Loan) Repaid(on Date) Money { return l.principal().Sub(l.Remaining(on)) }

// Installment is one row of an amortization schedule.
type Installment struct {
	N         int   `json:"n"` // 1-based
	Due       Date  `json:"due"`
	Payment   Money `json:"payment"`
	Interest  Money `json:"interest"`
	Principal Money `json:"principal"`
	Remaining Money `json:"remaining"`
}

// Schedule returns the month by month amortization table of the loan. Each
// row is rounded to the currency fraction and the last installment absorbs
// the rounding so the balance closes at exactly zero. An incomplete loan
// (no principal or no duration) has no schedule.
func (l Loan) Schedule() []Installment {
	principal, n := l.principal(), l.Duration.Or(0)
	if n <= 0 || !principal.IsPositive() {
		return nil
	}
	r := monthlyRate(l.Rate.Or(0))
	payment := l.MonthlyPayment().Round()
	balance := principal
	rows := make([]Installment, 0, n)
	for i := 1; i <= n; i++ {
		interest := balance.Mul(R(r)).Round()
		part := payment.Sub(interest)
		if i == n || part.GreaterThan(balance) {
			part = balance
		}
		balance = balance.Sub(part)
		var due Date
		if !l.Start.IsZero() {
			due = l.Start.AddMonth(i)
		}
		rows = append(rows, Installment{
			N:         i,
			Due:       due,
			Payment:   interest.Add(part),
			Interest:  interest,
			Principal: part,
			Remaining: balance,
		})
		if balance.IsZero() {
			break
		}
	}
	return rows
}

// TotalInterest returns the interest paid over the whole schedule.
func TotalInterest(rows []Installment) Money {
	var total Money
	for _, row := range rows {
		total = total.Add(row.Interest)
	}
	return total
}
