package patrimoine

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

const snapshotJSON = `{
  "currency": "eur",
  "properties": [
    {
      "id": "p1",
      "name": "Rue des Lilas",
      "financing": "credit",
      "rent": 1000,
      "charges": {"propertyTax": 1200, "coOwnership": 600, "insurance": 240},
      "chargesEntry": "annual",
      "loan": {"principal": 200000, "rate": 3.5, "duration": 240, "start": "2022-06-01"},
      "investment": {"purchasePrice": "180000", "notaryFees": 14000},
      "acquired": "2022-06-01",
      "rentalStart": "2022-09-01T00:00:00Z",
      "revenueOverride": 25000
    }
  ],
  "lots": [{"id": "l1", "propertyId": "p1", "name": "T3", "rent": 1000, "default": true}],
  "tenants": [{"id": "t1", "lotId": "l1", "name": "Alex", "aid": 150, "paymentMode": "DIRECT_DEBIT", "share": 1, "moveIn": "2022-09-01"}],
  "payments": [{"month": "2024-01", "tenantId": "t1", "paid": true, "paidOn": "2024-01-05"}]
}`

func TestDecodePortfolio(t *testing.T) {
	pf, warnings, err := DecodePortfolio(strings.NewReader(snapshotJSON), FormatJSON)
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("DecodePortfolio() warnings = %q", warnings)
	}
	if pf.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", pf.Currency)
	}
	p, ok := pf.Property("p1")
	if !ok {
		t.Fatal("Property(p1) not found")
	}
	if p.Financing != Credit {
		t.Errorf("Financing = %v, want CREDIT", p.Financing)
	}
	// annual entries are stored monthly, the property tax stays annual
	assertMoney(t, "PropertyTax", p.Charges.PropertyTax, EUR(1200))
	assertMoney(t, "CoOwnership", p.Charges.CoOwnership, EUR(50))
	assertMoney(t, "Insurance", p.Charges.Insurance, EUR(20))
	assertMoney(t, "PurchasePrice", p.Investment.PurchasePrice, EUR(180000))
	if p.RentalStart != NewDate(2022, 9, 1) {
		t.Errorf("RentalStart = %v, want 2022-09-01", p.RentalStart)
	}
	if p.Loan.Start != NewDate(2022, 6, 1) || p.Loan.Duration.Or(0) != 240 {
		t.Errorf("Loan = %+v", p.Loan)
	}
	if v, ok := p.RevenueOverride.Get(); !ok || !v.Equal(EUR(25000)) {
		t.Errorf("RevenueOverride = %v, %v, want 25000", v, ok)
	}
	if p.ChargesOverride.IsSet() {
		t.Error("ChargesOverride is set, want unset")
	}

	if len(pf.Tenants) != 1 || pf.Tenants[0].Mode != DirectDebit {
		t.Errorf("Tenants = %+v", pf.Tenants)
	}
	if len(pf.Payments) != 1 || pf.Payments[0].Month != NewMonth(2024, 1) {
		t.Errorf("Payments = %+v", pf.Payments)
	}
	if !pf.Lots[0].Default {
		t.Error("lot l1 is not the default lot")
	}
}

func TestDecodePortfolio_Warnings(t *testing.T) {
	const snapshot = `{
  "properties": [{"name": "no id", "financing": "leasing", "acquired": "someday", "chargesEntry": "weekly"}],
  "tenants": [{"id": "t1", "lotId": "l1", "paymentMode": "bitcoin", "moveIn": "2023-02-30"}],
  "payments": [{"month": "january", "tenantId": "t1"}, {"month": "2024-2", "tenantId": "t1"}]
}`
	pf, warnings, err := DecodePortfolio(strings.NewReader(snapshot), FormatJSON)
	if err != nil {
		t.Fatalf("DecodePortfolio() error = %v", err)
	}

	p := pf.Properties[0]
	if err := uuid.Validate(p.ID); err != nil {
		t.Errorf("property ID = %q, want a uuid: %v", p.ID, err)
	}
	if p.Financing != Cash || !p.Acquired.IsZero() {
		t.Errorf("property = %+v, want CASH and no acquisition date", p)
	}
	if pf.Tenants[0].Mode != Transfer || !pf.Tenants[0].MoveIn.IsZero() {
		t.Errorf("tenant = %+v, want transfer and no move in", pf.Tenants[0])
	}
	if len(pf.Payments) != 1 || pf.Payments[0].Month != NewMonth(2024, 2) {
		t.Errorf("Payments = %+v, want only 2024-02", pf.Payments)
	}

	want := []string{
		"property #1 has no id",
		`unknown financing "leasing"`,
		`unknown charges entry mode "weekly"`,
		`acquired: invalid date "someday"`,
		`unknown payment mode "bitcoin"`,
		`moveIn: invalid date "2023-02-30"`,
		"payment #1: invalid month",
	}
	if len(warnings) != len(want) {
		t.Errorf("DecodePortfolio() = %d warnings, want %d: %q", len(warnings), len(want), warnings)
	}
	all := strings.Join(warnings, "\n")
	for _, w := range want {
		if !strings.Contains(all, w) {
			t.Errorf("warnings do not contain %q:\n%s", w, all)
		}
	}
}

func TestDecodePortfolio_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		format   string
		contains string
	}{
		{"syntax", `{"properties": [`, FormatJSON, "format error"},
		{"amount", `{"properties": [{"id": "a", "rent": "a lot"}]}`, FormatJSON, "invalid amount"},
		{"duplicate", `{"properties": [{"id": "a"}, {"id": "a"}]}`, FormatJSON, "duplicate property id"},
		{"currency", `{"currency": "ABC"}`, FormatJSON, "unknown currency"},
		{"format", `{}`, "xml", "unknown portfolio format"},
		{"yaml syntax", "properties: [", FormatYAML, "format error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodePortfolio(strings.NewReader(tt.input), tt.format)
			if err == nil || !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("DecodePortfolio() error = %v, want %q", err, tt.contains)
			}
		})
	}
}

func TestDecodePortfolio_YAML(t *testing.T) {
	const snapshot = `
currency: EUR
properties:
  - id: p1
    name: Rue des Lilas
    financing: CREDIT
    rent: 1000
    charges:
      propertyTax: 1200
      coOwnership: 600
      insurance: 240
    chargesEntry: annual
    loan:
      principal: 200000
      rate: 3.5
      duration: 240
      start: "2022-06-01"
    investment:
      purchasePrice: 180000
      notaryFees: 14000
    acquired: "2022-06-01"
    rentalStart: "2022-09-01"
    revenueOverride: 25000
lots:
  - {id: l1, propertyId: p1, name: T3, rent: 1000, default: true}
tenants:
  - {id: t1, lotId: l1, name: Alex, aid: 150, paymentMode: direct_debit, share: 1, moveIn: "2022-09-01"}
payments:
  - {month: "2024-01", tenantId: t1, paid: true, paidOn: "2024-01-05"}
`
	fromYAML, warnings, err := DecodePortfolio(strings.NewReader(snapshot), "yml")
	if err != nil {
		t.Fatalf("DecodePortfolio(yaml) error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("DecodePortfolio(yaml) warnings = %q", warnings)
	}
	fromJSON, _, _ := DecodePortfolio(strings.NewReader(snapshotJSON), FormatJSON)

	var a, b bytes.Buffer
	if err := EncodePortfolio(&a, fromYAML); err != nil {
		t.Fatal(err)
	}
	if err := EncodePortfolio(&b, fromJSON); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("YAML and JSON snapshots differ:\n%s\n%s", a.String(), b.String())
	}
}

func TestDecodePortfolio_Empty(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatJSON} {
		input := ""
		if format == FormatJSON {
			input = "{}"
		}
		pf, warnings, err := DecodePortfolio(strings.NewReader(input), format)
		if err != nil {
			t.Fatalf("DecodePortfolio(%s) error = %v", format, err)
		}
		if len(pf.Properties) != 0 || len(warnings) != 0 || pf.Currency != DefaultCurrency {
			t.Errorf("DecodePortfolio(%s) = %+v, %q", format, pf, warnings)
		}
	}
}

func TestEncodePortfolio_RoundTrip(t *testing.T) {
	pf, _, err := DecodePortfolio(strings.NewReader(snapshotJSON), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	var first bytes.Buffer
	if err := EncodePortfolio(&first, pf); err != nil {
		t.Fatalf("EncodePortfolio() error = %v", err)
	}
	again, warnings, err := DecodePortfolio(bytes.NewReader(first.Bytes()), FormatJSON)
	if err != nil {
		t.Fatalf("DecodePortfolio(EncodePortfolio()) error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %q", warnings)
	}
	var second bytes.Buffer
	if err := EncodePortfolio(&second, again); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("round trip differs:\n%s\n%s", first.String(), second.String())
	}

	on := NewDate(2024, 6, 15)
	assertMoney(t, "NetCashFlow", again.Summarize(on).NetCashFlow, pf.Summarize(on).NetCashFlow)
}

func TestLoadPortfolio(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	if err := os.WriteFile(path, []byte("properties:\n  - {id: a, rent: 100}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	pf, _, err := LoadPortfolio(path, "USD")
	if err != nil {
		t.Fatalf("LoadPortfolio() error = %v", err)
	}
	// the snapshot has no currency, the given one applies
	if pf.Currency != "USD" || pf.Properties[0].Rent.Currency() != "USD" {
		t.Errorf("LoadPortfolio() currency = %q, want USD", pf.Currency)
	}

	if _, _, err := LoadPortfolio(filepath.Join(dir, "missing.json"), "EUR"); err == nil {
		t.Error("LoadPortfolio(missing) error = nil")
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"portfolio.json", FormatJSON},
		{"portfolio.YAML", FormatYAML},
		{"dir/portfolio.yml", FormatYAML},
		{"portfolio", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatOf(tt.path); got != tt.want {
			t.Errorf("FormatOf(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestEncodePortfolio_KeepsExactCharges(t *testing.T) {
	snapshot := `{"properties": [{"id": "p1", "rent": 900, "chargesEntry": "annual", "charges": {"coOwnership": 1000}}]}`
	pf, _, err := DecodePortfolio(strings.NewReader(snapshot), FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := EncodePortfolio(&buf, pf); err != nil {
		t.Fatal(err)
	}
	again, _, err := DecodePortfolio(&buf, FormatJSON)
	if err != nil {
		t.Fatalf("DecodePortfolio(EncodePortfolio()) error = %v", err)
	}

	want := pf.Properties[0].Charges.CoOwnership
	if got := again.Properties[0].Charges.CoOwnership; !got.Equal(want) {
		t.Errorf("CoOwnership = %s, want %s", got.value, want.value)
	}
	if got := again.Properties[0].Charges.CoOwnership.Times(240); !got.Round().Equal(M(20000, "EUR")) {
		t.Errorf("charges over 240 months = %v, want €20,000.00", got.Round())
	}
}
