package patrimoine

import (
	"strings"
	"testing"
)

func TestValidatePortfolio(t *testing.T) {
	clean := func() ([]Property, []Lot, []Tenant, []PaymentRecord) {
		return []Property{*rented()},
			[]Lot{{ID: "l1", PropertyID: "p1", Rent: EUR(1000)}},
			[]Tenant{{ID: "t1", LotID: "l1", Aid: EUR(100), MoveIn: NewDate(2023, 1, 1)}},
			[]PaymentRecord{{Month: NewMonth(2024, 1), TenantID: "t1", Paid: true}}
	}

	tests := []struct {
		name string
		edit func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord)
		want []string
	}{
		{
			name: "clean",
			edit: func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord) {
				return p, l, t, pay
			},
		},
		{
			name: "negative amounts",
			edit: func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord) {
				p[0].Charges.Insurance = EUR(-5)
				p[0].Investment.NotaryFees = EUR(-10)
				t[0].Aid = EUR(-1)
				return p, l, t, pay
			},
			want: []string{
				`property "p1": charges.insurance: must be greater than or equal to 0`,
				`property "p1": investment.notaryFees: must be greater than or equal to 0`,
				`tenant "t1": aid: must be greater than or equal to 0`,
			},
		},
		{
			name: "credit without terms",
			edit: func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord) {
				p[0].Financing = Credit
				return p, l, t, pay
			},
			want: []string{
				`property "p1": loan.principal: missing on a CREDIT property, read as 0`,
				`property "p1": loan.rate: missing on a CREDIT property, read as 0`,
				`property "p1": loan.duration: missing on a CREDIT property, read as 0`,
			},
		},
		{
			name: "credit out of range",
			edit: func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord) {
				p[0].Financing = Credit
				p[0].Loan = Loan{Principal: Some(EUR(-1)), Rate: Some(-1.5), Duration: Some(700)}
				return p, l, t, pay
			},
			want: []string{
				`property "p1": loan.duration: 700 months is out of range (1 to 600)`,
				`property "p1": loan.rate: negative rate -1.5%`,
				`property "p1": loan.principal: must be greater than or equal to 0`,
			},
		},
		{
			name: "dates",
			edit: func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord) {
				p[0].RentalStart = NewDate(2022, 1, 1)
				t[0].MoveIn = NewDate(2022, 10, 1)
				return p, l, t, pay
			},
			want: []string{
				`property "p1": rentalStart: 2022-01-01 is before the acquisition on 2022-11-01`,
				`tenant "t1": moveIn: 2022-10-01 is before the acquisition on 2022-11-01`,
			},
		},
		{
			name: "lot rents",
			edit: func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord) {
				l[0].Rent = EUR(900)
				return p, l, t, pay
			},
			want: []string{`property "p1": rent: lot rents sum to`},
		},
		{
			name: "dangling references",
			edit: func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord) {
				l = append(l, Lot{ID: "l2", PropertyID: "gone"}, Lot{ID: "l3"})
				t = append(t, Tenant{ID: "t2", LotID: "nowhere"})
				pay = append(pay, PaymentRecord{Month: NewMonth(2024, 2), TenantID: "ghost"})
				return p, l, t, pay
			},
			want: []string{
				`lot "l2": propertyId: unknown property "gone"`,
				`lot "l3": propertyId: is required`,
				`tenant "t2": lotId: unknown lot "nowhere"`,
				`payment 2024-02: tenantId: unknown tenant "ghost"`,
			},
		},
		{
			name: "payments without tenant",
			edit: func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord) {
				pay = append(pay,
					PaymentRecord{Month: NewMonth(2024, 2), LotID: "l1", Paid: true},
					PaymentRecord{Month: NewMonth(2024, 3), LotID: "l9"},
					PaymentRecord{Month: NewMonth(2024, 4)},
				)
				return p, l, t, pay
			},
			want: []string{
				`payment 2024-03: lotId: lot "l9" does not have exactly one tenant`,
				`payment 2024-04: tenantId: is required`,
			},
		},
		{
			name: "aid",
			edit: func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord) {
				t[0].Aid = EUR(1200)
				return p, l, t, pay
			},
			want: []string{`tenant "t1": aid: aid`},
		},
		{
			name: "shares",
			edit: func(p []Property, l []Lot, t []Tenant, pay []PaymentRecord) ([]Property, []Lot, []Tenant, []PaymentRecord) {
				t[0].Share = Some(R(0.7))
				t = append(t, Tenant{ID: "t2", LotID: "l1", Share: Some(R(1.5))})
				return p, l, t, pay
			},
			want: []string{
				`tenant "t2": share: 1.5 is not between 0 and 1`,
				`lot "l1": tenants: tenant shares sum to 2.2, more than the whole rent`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			properties, lots, tenants, payments := tt.edit(clean())
			pf, err := NewPortfolio("EUR", properties, lots, tenants, payments)
			if err != nil {
				t.Fatalf("NewPortfolio() error = %v", err)
			}
			issues := ValidatePortfolio(pf)
			var got []string
			for _, i := range issues {
				got = append(got, i.String())
			}
			if len(got) != len(tt.want) {
				t.Errorf("ValidatePortfolio() = %d issues, want %d:\n%s", len(got), len(tt.want), strings.Join(got, "\n"))
			}
			for _, w := range tt.want {
				found := false
				for _, g := range got {
					if strings.HasPrefix(g, w) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("ValidatePortfolio() has no issue %q:\n%s", w, strings.Join(got, "\n"))
				}
			}
		})
	}
}

func TestIssue_String(t *testing.T) {
	tests := []struct {
		issue Issue
		want  string
	}{
		{Issue{Record: "snapshot", Message: "bad date"}, "snapshot: bad date"},
		{Issue{Record: `lot "l1"`, Field: "rent", Message: "must be greater than or equal to 0"}, `lot "l1": rent: must be greater than or equal to 0`},
	}
	for _, tt := range tests {
		if got := tt.issue.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
