package patrimoine

import (
	"fmt"
	"slices"
)

// DefaultCurrency is the currency of a portfolio that does not declare one.
const DefaultCurrency = "EUR"

// Portfolio is a read-only snapshot of the owner's records. All amounts are
// expressed in Currency.
//
// Use NewPortfolio to build one: the lookups rely on an index built there.
type Portfolio struct {
	Currency   string          `json:"currency"`
	Properties []Property      `json:"properties"`
	Lots       []Lot           `json:"lots"`
	Tenants    []Tenant        `json:"tenants"`
	Payments   []PaymentRecord `json:"payments"`

	// IRR bounds the IRR search of Summarize. The zero value means DefaultIRROptions.
	IRR IRROptions `json:"-"`

	properties map[string]int
	lots       map[string][]int // by property ID
	tenants    map[string][]int // by lot ID
	payments   map[paymentKey]int
}

type paymentKey struct {
	tenant string
	month  Month
}

// NewPortfolio indexes the records and expresses every amount in currency.
// An empty currency is DefaultCurrency. Duplicate property, lot or tenant IDs
// are an error.
func NewPortfolio(currency string, properties []Property, lots []Lot, tenants []Tenant, payments []PaymentRecord) (*Portfolio, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	pf := &Portfolio{
		Currency:   currency,
		Properties: make([]Property, len(properties)),
		Lots:       make([]Lot, len(lots)),
		Tenants:    make([]Tenant, len(tenants)),
		Payments:   slices.Clone(payments),
		properties: make(map[string]int, len(properties)),
		lots:       make(map[string][]int),
		tenants:    make(map[string][]int),
		payments:   make(map[paymentKey]int, len(payments)),
	}
	for i, p := range properties {
		if _, exists := pf.properties[p.ID]; exists {
			return nil, fmt.Errorf("duplicate property id %q", p.ID)
		}
		pf.properties[p.ID] = i
		pf.Properties[i] = p.withCurrency(currency)
	}

	seen := make(map[string]bool, len(lots))
	for i, l := range lots {
		if seen[l.ID] {
			return nil, fmt.Errorf("duplicate lot id %q", l.ID)
		}
		seen[l.ID] = true
		l.Rent = l.Rent.In(currency)
		pf.Lots[i] = l
		pf.lots[l.PropertyID] = append(pf.lots[l.PropertyID], i)
	}

	clear(seen)
	for i, t := range tenants {
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate tenant id %q", t.ID)
		}
		seen[t.ID] = true
		t.Aid = t.Aid.In(currency)
		pf.Tenants[i] = t
		pf.tenants[t.LotID] = append(pf.tenants[t.LotID], i)
	}

	// the last record of a month wins
	for i, p := range pf.Payments {
		if tenant, ok := pf.payer(p); ok {
			pf.payments[paymentKey{tenant, p.Month}] = i
		}
	}
	return pf, nil
}

// Property returns the property with the given ID.
func (pf *Portfolio) Property(id string) (*Property, bool) {
	i, ok := pf.properties[id]
	if !ok {
		return nil, false
	}
	return &pf.Properties[i], true
}

// LotsOf returns the lots of a property, in record order.
func (pf *Portfolio) LotsOf(propertyID string) []*Lot {
	var res []*Lot
	for _, i := range pf.lots[propertyID] {
		res = append(res, &pf.Lots[i])
	}
	return res
}

// TenantsOf returns the tenants of a lot, in record order.
func (pf *Portfolio) TenantsOf(lotID string) []*Tenant {
	var res []*Tenant
	for _, i := range pf.tenants[lotID] {
		res = append(res, &pf.Tenants[i])
	}
	return res
}

// payer returns the tenant a payment record belongs to: its tenant ID, or
// the only tenant of its lot when the record names the lot alone.
func (pf *Portfolio) payer(p PaymentRecord) (string, bool) {
	if p.TenantID != "" {
		return p.TenantID, true
	}
	if ts := pf.tenants[p.LotID]; p.LotID != "" && len(ts) == 1 {
		return pf.Tenants[ts[0]].ID, true
	}
	return "", false
}

func (pf *Portfolio) payment(tenantID string, m Month) (PaymentRecord, bool) {
	i, ok := pf.payments[paymentKey{tenantID, m}]
	if !ok {
		return PaymentRecord{}, false
	}
	return pf.Payments[i], true
}

// Projection projects the net worth of every property of the portfolio.
func (pf *Portfolio) Projection(opts ProjectionOptions) Projection {
	return Project(pf.Properties, opts)
}

// Outstanding returns the capital still owed on the property's loan on the
// given date, 0 for a CASH property. A loan without a start date is taken to
// start on the acquisition date.
func (p *Property) Outstanding(on Date) Money {
	if p.Financing != Credit {
		return Money{}
	}
	l := p.Loan
	l.Start = p.loanStart(on)
	return l.Remaining(on)
}

// Schedule returns the amortization table of the property's loan, see
// Loan.Schedule. The loan start follows the same fallback as Outstanding.
func (p *Property) Schedule(now Date) []Installment {
	if p.Financing != Credit {
		return nil
	}
	l := p.Loan
	l.Start = p.loanStart(now)
	return l.Schedule()
}

// missing lists the data a property lacks for a complete analysis.
func (p *Property) missing() []string {
	var res []string
	if !p.Investment.PurchasePrice.IsPositive() {
		res = append(res, "purchase price")
	}
	if !p.Investment.Total().IsPositive() {
		res = append(res, "investment")
	}
	if p.ownedSince().IsZero() {
		res = append(res, "rental start")
	}
	if p.Financing == Credit {
		if !p.Loan.Principal.IsSet() {
			res = append(res, "loan principal")
		}
		if !p.Loan.Rate.IsSet() {
			res = append(res, "loan rate")
		}
		if d := p.Loan.Duration.Or(0); d <= 0 {
			res = append(res, "loan duration")
		}
	}
	return res
}

// PropertySummary is the one line view of a property in a Summary.
type PropertySummary struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Financing   Financing   `json:"financing"`
	CashFlow    CashFlow    `json:"cashFlow"`
	Rentability Rentability `json:"rentability"`
	IRR         Percent     `json:"-"`
	IRROK       bool        `json:"-"`
	Outstanding Money       `json:"outstanding"`
	Missing     []string    `json:"missing,omitempty"`
}

func (s PropertySummary) MarshalJSON() ([]byte, error) {
	type plain PropertySummary
	var w jsonObjectWriter
	w.EmbedFrom(plain(s))
	w.Percent("irr", s.IRR, s.IRROK)
	return w.MarshalJSON()
}

// LotMismatch is a property whose lot rents do not add up to its rent.
type LotMismatch struct {
	PropertyID   string `json:"propertyId"`
	PropertyRent Money  `json:"propertyRent"`
	LotsRent     Money  `json:"lotsRent"`
}

// Summary holds the key figures of the whole portfolio on a date.
type Summary struct {
	On         Date              `json:"on"`
	Currency   string            `json:"currency"`
	Properties []PropertySummary `json:"properties"`

	Rent            Money `json:"rent"` // monthly totals
	Charges         Money `json:"charges"`
	LoanPayments    Money `json:"loanPayments"`
	NetCashFlow     Money `json:"netCashFlow"`
	AnnualCashFlow  Money `json:"annualCashFlow"`
	PurchasePrice   Money `json:"purchasePrice"`
	TotalInvestment Money `json:"totalInvestment"`
	Outstanding     Money `json:"outstanding"`

	GrossYield   Percent `json:"-"`
	GrossYieldOK bool    `json:"-"`
	NetYield     Percent `json:"-"`
	NetYieldOK   bool    `json:"-"`

	Incomplete    []Skip        `json:"incomplete,omitempty"`
	LotMismatches []LotMismatch `json:"lotMismatches,omitempty"`
}

func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	var w jsonObjectWriter
	w.EmbedFrom(plain(s))
	w.Percent("grossYield", s.GrossYield, s.GrossYieldOK)
	w.Percent("netYield", s.NetYield, s.NetYieldOK)
	return w.MarshalJSON()
}

// Summarize computes the figures of every property and their totals on the
// given date.
func (pf *Portfolio) Summarize(on Date) Summary {
	opts := pf.irrOptions()
	zero := M(0, pf.Currency)
	s := Summary{
		On:              on,
		Currency:        pf.Currency,
		Rent:            zero,
		Charges:         zero,
		LoanPayments:    zero,
		NetCashFlow:     zero,
		PurchasePrice:   zero,
		TotalInvestment: zero,
		Outstanding:     zero,
	}
	for i := range pf.Properties {
		p := &pf.Properties[i]
		line := summarize(p, on, opts)
		r := line.Rentability
		s.Properties = append(s.Properties, line)

		s.Rent = s.Rent.Add(r.MonthlyRent)
		s.Charges = s.Charges.Add(r.MonthlyCharges)
		s.LoanPayments = s.LoanPayments.Add(r.MonthlyPayment)
		s.NetCashFlow = s.NetCashFlow.Add(r.MonthlyCashFlow)
		s.PurchasePrice = s.PurchasePrice.Add(p.Investment.PurchasePrice)
		s.TotalInvestment = s.TotalInvestment.Add(r.TotalInvestment)
		s.Outstanding = s.Outstanding.Add(line.Outstanding)

		for _, m := range line.Missing {
			s.Incomplete = append(s.Incomplete, Skip{PropertyID: p.ID, Reason: "no " + m})
		}
		if mm, ok := pf.lotMismatch(p); ok {
			s.LotMismatches = append(s.LotMismatches, mm)
		}
	}
	s.AnnualCashFlow = s.NetCashFlow.Times(12)
	s.GrossYield, s.GrossYieldOK = GrossYieldPct(s.Rent, s.PurchasePrice)
	s.NetYield, s.NetYieldOK = NetYieldPct(s.Rent.Times(12), s.Charges.Times(12), s.TotalInvestment)
	return s
}

// Describe returns the figures of one property on the given date.
func (pf *Portfolio) Describe(id string, on Date) (PropertySummary, bool) {
	p, ok := pf.Property(id)
	if !ok {
		return PropertySummary{}, false
	}
	return summarize(p, on, pf.irrOptions()), true
}

func summarize(p *Property, on Date, opts IRROptions) PropertySummary {
	r := Analyze(p, on)
	line := PropertySummary{
		ID:          p.ID,
		Name:        p.Name,
		Financing:   p.Financing,
		CashFlow:    PropertyCashFlow(p),
		Rentability: r,
		Outstanding: p.Outstanding(on),
		Missing:     p.missing(),
	}
	line.IRR, line.IRROK = InvestmentIRR(r.TotalInvestment, r.MonthlyCashFlow, r.MonthsOwned, opts)
	return line
}

func (pf *Portfolio) irrOptions() IRROptions {
	if pf.IRR == (IRROptions{}) {
		return DefaultIRROptions
	}
	return pf.IRR
}

// lotMismatch reports a property whose lots exist but whose rents do not sum
// to the property rent.
func (pf *Portfolio) lotMismatch(p *Property) (LotMismatch, bool) {
	lots := pf.LotsOf(p.ID)
	if len(lots) == 0 {
		return LotMismatch{}, false
	}
	total := M(0, pf.Currency)
	for _, l := range lots {
		total = total.Add(l.Rent)
	}
	if total.Equal(p.Rent) {
		return LotMismatch{}, false
	}
	return LotMismatch{PropertyID: p.ID, PropertyRent: p.Rent, LotsRent: total}, true
}
