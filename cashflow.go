package patrimoine

// NetCashFlow returns rent - monthlyCharges - loanPayment.
func NetCashFlow(rent, monthlyCharges, loanPayment Money) Money {
	return rent.Sub(monthlyCharges).Sub(loanPayment)
}

// CashFlow is the monthly cash flow breakdown of a property, or of a lot.
type CashFlow struct {
	Rent        Money   `json:"rent"`
	Charges     Charges `json:"charges"`
	Total       Money   `json:"totalCharges"` // monthly-normalized charges
	LoanPayment Money   `json:"loanPayment"`
	Net         Money   `json:"net"`
}

// PropertyCashFlow returns the monthly cash flow of p. A CASH property has no
// loan payment.
func PropertyCashFlow(p *Property) CashFlow {
	charges := p.MonthlyCharges()
	payment := p.LoanPayment()
	return CashFlow{
		Rent:        p.Rent,
		Charges:     p.Charges,
		Total:       charges,
		LoanPayment: payment,
		Net:         NetCashFlow(p.Rent, charges, payment),
	}
}

// LotProration returns the share of the property carried by the lot:
// lot.Rent / property.Rent, or 0 when the property has no rent.
func LotProration(lot *Lot, p *Property) Ratio {
	if !p.Rent.IsPositive() {
		return R(0)
	}
	return lot.Rent.DivMoney(p.Rent)
}

// LotBreakdown prorates every charge component and the loan payment of p by
// the lot's share of the rent. The lot's net cash flow is its own rent minus
// the prorated charges and payment.
func LotBreakdown(lot *Lot, p *Property) CashFlow {
	ratio := LotProration(lot, p)
	charges := p.Charges.Scale(ratio)
	total := MonthlyCharges(charges)
	payment := p.LoanPayment().Mul(ratio)
	return CashFlow{
		Rent:        lot.Rent,
		Charges:     charges,
		Total:       total,
		LoanPayment: payment,
		Net:         NetCashFlow(lot.Rent, total, payment),
	}
}

// TenantNetRent returns what the tenant pays out of pocket: the rent owed
// minus the housing aid. It is not floored, a negative value means the aid
// exceeds the rent and must be surfaced to the owner.
func TenantNetRent(t *Tenant, lotRent Money) Money {
	return lotRent.Sub(t.Aid)
}

// TenantRent returns the part of the lot rent owed by t among the tenants
// sharing the lot. A tenant without an explicit share gets an equal split of
// what the explicit shares leave.
func TenantRent(t *Tenant, lot *Lot, cotenants []*Tenant) Money {
	if s, ok := t.Share.Get(); ok {
		return lot.Rent.Mul(s)
	}
	rest, implicit := R(1), 0
	for _, c := range cotenants {
		if s, ok := c.Share.Get(); ok {
			rest = rest.Sub(s)
		} else {
			implicit++
		}
	}
	if implicit == 0 || rest.IsNegative() {
		return lot.Rent.Mul(R(0))
	}
	return lot.Rent.Mul(rest).Div(implicit)
}

// TenantCollection is the collection state of one tenant over a range of months.
type TenantCollection struct {
	TenantID    string `json:"tenantId"`
	LotID       string `json:"lotId"`
	Rent        Money  `json:"rent"`  // monthly rent owed for the tenant's part of the lot
	Share       Money  `json:"share"` // monthly tenant-borne part (rent - aid)
	Aid         Money  `json:"aid"`   // monthly aid
	MonthsPaid  int    `json:"monthsPaid"`
	MonthsAid   int    `json:"monthsAidPaid"`
	Collected   Money  `json:"collected"`
	Outstanding Money  `json:"outstanding"`
	// AidExceedsRent flags a negative tenant share.
	AidExceedsRent bool `json:"aidExceedsRent,omitempty"`
}

// Collection is the realized cash of a property over a range of months.
type Collection struct {
	From        Month              `json:"from"`
	To          Month              `json:"to"`
	TenantShare Money              `json:"tenantShare"`
	Aid         Money              `json:"aid"`
	Total       Money              `json:"total"`
	Expected    Money              `json:"expected"`
	Outstanding Money              `json:"outstanding"`
	Tenants     []TenantCollection `json:"tenants"`
}

// Collected computes the cash actually received for the property over the
// months in r: for each tenant, the tenant share times the months marked paid
// plus the aid times the months marked aid-paid. Both flags are independent.
// Months before the tenant's move-in are neither expected nor collected.
func (pf *Portfolio) Collected(propertyID string, r MonthRange) Collection {
	res := Collection{From: r.From, To: r.To}
	for _, lot := range pf.LotsOf(propertyID) {
		cotenants := pf.TenantsOf(lot.ID)
		for _, t := range cotenants {
			rent := TenantRent(t, lot, cotenants)
			line := TenantCollection{
				TenantID: t.ID,
				LotID:    lot.ID,
				Rent:     rent,
				Share:    TenantNetRent(t, rent),
				Aid:      t.Aid,
			}
			line.AidExceedsRent = line.Share.IsNegative()

			due := 0
			for m := r.From; !m.After(r.To); m = m.Add(1) {
				if !t.MoveIn.IsZero() && t.MoveIn.MonthOf().After(m) {
					continue
				}
				due++
				p, ok := pf.payment(t.ID, m)
				if !ok {
					continue
				}
				if p.Paid {
					line.MonthsPaid++
				}
				if p.AidPaid {
					line.MonthsAid++
				}
			}
			paidShare := line.Share.Times(line.MonthsPaid)
			paidAid := line.Aid.Times(line.MonthsAid)
			line.Collected = paidShare.Add(paidAid)
			line.Outstanding = line.Share.Times(due - line.MonthsPaid).Add(line.Aid.Times(due - line.MonthsAid))

			res.TenantShare = res.TenantShare.Add(paidShare)
			res.Aid = res.Aid.Add(paidAid)
			res.Expected = res.Expected.Add(rent.Times(due))
			res.Outstanding = res.Outstanding.Add(line.Outstanding)
			res.Tenants = append(res.Tenants, line)
		}
	}
	res.Total = res.TenantShare.Add(res.Aid)
	return res
}
