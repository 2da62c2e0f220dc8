package patrimoine

// TenantLine is what one tenant of a lot owes each month.
type TenantLine struct {
	TenantID string      `json:"tenantId"`
	Name     string      `json:"name"`
	Mode     PaymentMode `json:"paymentMode"`
	Rent     Money       `json:"rent"` // part of the lot rent
	Aid      Money       `json:"aid"`
	NetRent  Money       `json:"netRent"` // rent - aid, negative when the aid exceeds the rent
	// AidExceedsRent flags a negative NetRent.
	AidExceedsRent bool `json:"aidExceedsRent,omitempty"`
}

// LotReport is the monthly breakdown of one lot of a property.
type LotReport struct {
	LotID     string       `json:"lotId"`
	Name      string       `json:"name"`
	Default   bool         `json:"default,omitempty"`
	Proration Ratio        `json:"proration"`
	CashFlow  CashFlow     `json:"cashFlow"`
	Tenants   []TenantLine `json:"tenants"`
}

// LotReports returns the breakdown of every lot of the property, charges and loan
// payment prorated by the lot's share of the rent.
func (pf *Portfolio) LotReports(propertyID string) ([]LotReport, bool) {
	p, ok := pf.Property(propertyID)
	if !ok {
		return nil, false
	}
	var res []LotReport
	for _, lot := range pf.LotsOf(p.ID) {
		r := LotReport{
			LotID:     lot.ID,
			Name:      lot.Name,
			Default:   lot.Default,
			Proration: LotProration(lot, p),
			CashFlow:  LotBreakdown(lot, p),
		}
		cotenants := pf.TenantsOf(lot.ID)
		for _, t := range cotenants {
			rent := TenantRent(t, lot, cotenants)
			net := TenantNetRent(t, rent)
			r.Tenants = append(r.Tenants, TenantLine{
				TenantID:       t.ID,
				Name:           t.Name,
				Mode:           t.Mode,
				Rent:           rent,
				Aid:            t.Aid,
				NetRent:        net,
				AidExceedsRent: net.IsNegative(),
			})
		}
		res = append(res, r)
	}
	return res, true
}
