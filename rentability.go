package patrimoine

// Rentability gathers the yield and return metrics of one property on a
// given date.
//
// Percentages come with an ok flag: a false flag means "not computable"
// (missing purchase price or investment) and must not be shown as 0%. In
// JSON a percentage that is not computable is null.
type Rentability struct {
	PropertyID string `json:"propertyId"`
	On         Date   `json:"on"`

	MonthlyRent     Money `json:"monthlyRent"`
	MonthlyCharges  Money `json:"monthlyCharges"`
	MonthlyPayment  Money `json:"monthlyPayment"`
	MonthlyCashFlow Money `json:"monthlyCashFlow"`

	AnnualRent     Money `json:"annualRent"`
	AnnualCharges  Money `json:"annualCharges"`
	AnnualPayments Money `json:"annualPayments"`
	AnnualCashFlow Money `json:"annualCashFlow"`

	TotalInvestment Money `json:"totalInvestment"`

	GrossYield   Percent `json:"-"`
	GrossYieldOK bool    `json:"-"`
	NetYield     Percent `json:"-"`
	NetYieldOK   bool    `json:"-"`

	MonthsOwned       int     `json:"monthsOwned"`
	CumulativeRevenue Metric  `json:"cumulativeRevenue"`
	CumulativeCharges Metric  `json:"cumulativeCharges"`
	NetBalance        Money   `json:"netBalance"`
	ROI               Percent `json:"-"`
	ROIOK             bool    `json:"-"`
}

func (r Rentability) MarshalJSON() ([]byte, error) {
	type plain Rentability
	var w jsonObjectWriter
	w.EmbedFrom(plain(r))
	w.Percent("grossYield", r.GrossYield, r.GrossYieldOK)
	w.Percent("netYield", r.NetYield, r.NetYieldOK)
	w.Percent("roi", r.ROI, r.ROIOK)
	return w.MarshalJSON()
}

// GrossYieldPct returns (annual rent / purchase price) * 100.
func GrossYieldPct(monthlyRent, purchasePrice Money) (Percent, bool) {
	if !purchasePrice.IsPositive() {
		return 0, false
	}
	return monthlyRent.Times(12).DivMoney(purchasePrice).Percent(), true
}

// NetYieldPct returns ((annual rent - annual charges) / total investment) * 100.
func NetYieldPct(annualRent, annualCharges, totalInvestment Money) (Percent, bool) {
	if !totalInvestment.IsPositive() {
		return 0, false
	}
	return annualRent.Sub(annualCharges).DivMoney(totalInvestment).Percent(), true
}

// ROIPct returns (net balance / total investment) * 100.
func ROIPct(netBalance, totalInvestment Money) (Percent, bool) {
	if !totalInvestment.IsPositive() {
		return 0, false
	}
	return netBalance.DivMoney(totalInvestment).Percent(), true
}

// MonthsOwned returns the number of whole months the property has been
// rented on the given date, counted from the rental start or, failing that,
// from the acquisition date. It is 0 when both dates are absent.
func MonthsOwned(p *Property, on Date) int {
	return ElapsedMonths(p.ownedSince(), on)
}

// Analyze computes the rentability of p on the given date.
func Analyze(p *Property, on Date) Rentability {
	cf := PropertyCashFlow(p)
	r := Rentability{
		PropertyID:      p.ID,
		On:              on,
		MonthlyRent:     cf.Rent,
		MonthlyCharges:  cf.Total,
		MonthlyPayment:  cf.LoanPayment,
		MonthlyCashFlow: cf.Net,
		AnnualRent:      cf.Rent.Times(12),
		AnnualCharges:   cf.Total.Times(12),
		AnnualPayments:  cf.LoanPayment.Times(12),
		TotalInvestment: p.Investment.Total(),
		MonthsOwned:     MonthsOwned(p, on),
	}
	r.AnnualCashFlow = r.AnnualRent.Sub(r.AnnualCharges).Sub(r.AnnualPayments)

	r.GrossYield, r.GrossYieldOK = GrossYieldPct(cf.Rent, p.Investment.PurchasePrice)
	r.NetYield, r.NetYieldOK = NetYieldPct(r.AnnualRent, r.AnnualCharges, r.TotalInvestment)

	r.CumulativeRevenue = Resolve(p.RevenueOverride, cf.Rent.Times(r.MonthsOwned))
	r.CumulativeCharges = Resolve(p.ChargesOverride, cf.Total.Add(cf.LoanPayment).Times(r.MonthsOwned))
	r.NetBalance = r.CumulativeRevenue.Value().Sub(r.CumulativeCharges.Value())
	r.ROI, r.ROIOK = ROIPct(r.NetBalance, r.TotalInvestment)
	return r
}

// IRR returns the annualized internal rate of return of the property: an
// initial outflow of the total investment followed by MonthsOwned monthly
// inflows of the net cash flow. See InvestmentIRR.
func (r Rentability) IRR() (Percent, bool) {
	return InvestmentIRR(r.TotalInvestment, r.MonthlyCashFlow, r.MonthsOwned, DefaultIRROptions)
}

// CashFlows returns the monthly series the IRR is computed on.
func (r Rentability) CashFlows() []Money {
	return InvestmentFlows(r.TotalInvestment, r.MonthlyCashFlow, r.MonthsOwned)
}
