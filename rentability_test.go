package patrimoine

import "testing"

// rented is a CASH property rented for 12 months on 2024-01-01.
func rented() *Property {
	return &Property{
		ID:        "p1",
		Financing: Cash,
		Rent:      EUR(1000),
		Charges:   Charges{PropertyTax: EUR(1200), CoOwnership: EUR(100)},
		Investment: Investment{
			PurchasePrice: EUR(100000),
			NotaryFees:    EUR(8000),
			InitialWorks:  EUR(2000),
		},
		Acquired:    NewDate(2022, 11, 1),
		RentalStart: NewDate(2023, 1, 1),
	}
}

func TestAnalyze(t *testing.T) {
	r := Analyze(rented(), NewDate(2024, 1, 1))

	if r.MonthsOwned != 12 {
		t.Errorf("MonthsOwned = %d, want 12", r.MonthsOwned)
	}
	assertMoney(t, "AnnualRent", r.AnnualRent, EUR(12000))
	assertMoney(t, "AnnualCharges", r.AnnualCharges, EUR(2400))
	assertMoney(t, "AnnualCashFlow", r.AnnualCashFlow, EUR(9600))
	assertMoney(t, "TotalInvestment", r.TotalInvestment, EUR(110000))
	assertPercent(t, "GrossYield", r.GrossYield, r.GrossYieldOK, 12)
	assertPercent(t, "NetYield", r.NetYield, r.NetYieldOK, 9600.0/110000*100)

	assertMoney(t, "CumulativeRevenue", r.CumulativeRevenue.Value(), EUR(12000))
	assertMoney(t, "CumulativeCharges", r.CumulativeCharges.Value(), EUR(2400))
	assertMoney(t, "NetBalance", r.NetBalance, EUR(9600))
	assertPercent(t, "ROI", r.ROI, r.ROIOK, 9600.0/110000*100)
	if r.CumulativeRevenue.IsOverridden() || r.CumulativeCharges.IsOverridden() {
		t.Error("figures are overridden, want computed")
	}
}

func TestAnalyze_Overrides(t *testing.T) {
	p := rented()
	p.RevenueOverride = Some(EUR(15000))
	r := Analyze(p, NewDate(2024, 1, 1))

	if !r.CumulativeRevenue.IsOverridden() {
		t.Error("CumulativeRevenue is not overridden")
	}
	assertMoney(t, "CumulativeRevenue", r.CumulativeRevenue.Value(), EUR(15000))
	assertMoney(t, "CumulativeCharges", r.CumulativeCharges.Value(), EUR(2400))
	assertMoney(t, "NetBalance", r.NetBalance, EUR(12600))

	// an override of 0 is still an override
	p.ChargesOverride = Some(EUR(0))
	r = Analyze(p, NewDate(2024, 1, 1))
	assertMoney(t, "NetBalance", r.NetBalance, EUR(15000))
}

func TestAnalyze_NotComputable(t *testing.T) {
	tests := []struct {
		name      string
		edit      func(p *Property)
		wantGross bool
		wantNet   bool
	}{
		{"complete", func(p *Property) {}, true, true},
		{"no purchase price", func(p *Property) { p.Investment.PurchasePrice = EUR(0) }, false, true},
		{"no investment", func(p *Property) { p.Investment = Investment{} }, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := rented()
			tt.edit(p)
			r := Analyze(p, NewDate(2024, 1, 1))
			if r.GrossYieldOK != tt.wantGross {
				t.Errorf("GrossYieldOK = %v, want %v", r.GrossYieldOK, tt.wantGross)
			}
			if r.NetYieldOK != tt.wantNet || r.ROIOK != tt.wantNet {
				t.Errorf("NetYieldOK = %v, ROIOK = %v, want %v", r.NetYieldOK, r.ROIOK, tt.wantNet)
			}
			if !r.GrossYieldOK && FormatPercent(r.GrossYield, r.GrossYieldOK) != NotComputable {
				t.Errorf("FormatPercent() = %q, want %q", FormatPercent(r.GrossYield, r.GrossYieldOK), NotComputable)
			}
		})
	}
}

func TestYieldPct_ZeroDenominator(t *testing.T) {
	if _, ok := GrossYieldPct(EUR(1000), EUR(0)); ok {
		t.Error("GrossYieldPct() with no purchase price is computable")
	}
	if _, ok := NetYieldPct(EUR(12000), EUR(2400), EUR(-5)); ok {
		t.Error("NetYieldPct() with a negative investment is computable")
	}
	if _, ok := ROIPct(EUR(9600), EUR(0)); ok {
		t.Error("ROIPct() with no investment is computable")
	}
}

func TestMonthsOwned(t *testing.T) {
	on := NewDate(2024, 6, 15)
	tests := []struct {
		name     string
		acquired Date
		rental   Date
		want     int
	}{
		{"rental start", NewDate(2020, 1, 1), NewDate(2023, 6, 15), 12},
		{"falls back to the acquisition", NewDate(2023, 6, 1), Date{}, 12},
		{"no date", Date{}, Date{}, 0},
		{"not yet rented", Date{}, NewDate(2025, 1, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Property{Acquired: tt.acquired, RentalStart: tt.rental}
			if got := MonthsOwned(p, on); got != tt.want {
				t.Errorf("MonthsOwned() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRentability_IRR(t *testing.T) {
	r := Analyze(rented(), NewDate(2024, 1, 1))
	flows := r.CashFlows()
	if len(flows) != 13 {
		t.Fatalf("CashFlows() has %d flows, want 13", len(flows))
	}
	// 12 months of 800 do not pay back 110000
	irr, ok := r.IRR()
	if !ok {
		t.Fatal("IRR() is not computable")
	}
	if irr >= 0 {
		t.Errorf("IRR() = %v, want a negative return", irr)
	}
}
