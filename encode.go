package patrimoine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Snapshot formats accepted by DecodePortfolio.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// This file decodes a portfolio snapshot as exported by the records manager.
//
// The decoder is lenient: the records are owned by another system and the
// engine must still produce figures from imperfect data. A malformed date
// decodes as the zero date (the engine falls back to another date), an
// unknown enum decodes as its default, and a record without an ID gets a
// fresh one. Each of these produces a warning. Only a syntax error, or an
// amount that is not a number, fails the decoding.

// DecodePortfolio reads a JSON or YAML snapshot and returns the portfolio and
// the warnings collected while decoding. A snapshot that does not declare its
// currency is in DefaultCurrency.
func DecodePortfolio(r io.Reader, format string) (*Portfolio, []string, error) {
	return decodePortfolio(r, format, DefaultCurrency)
}

func decodePortfolio(r io.Reader, format, currency string) (*Portfolio, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read portfolio: %w", err)
	}
	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, nil, err
		}
	case FormatJSON, "":
	default:
		return nil, nil, fmt.Errorf("unknown portfolio format %q", format)
	}

	var jp jportfolio
	if err := json.Unmarshal(data, &jp); err != nil {
		return nil, nil, fmt.Errorf("format error in portfolio: %w", err)
	}

	d := decoder{}
	properties := make([]Property, 0, len(jp.Properties))
	for i, jprop := range jp.Properties {
		where := fmt.Sprintf("property #%d", i+1)
		p := Property{
			ID:              d.id(jprop.ID, where),
			Name:            jprop.Name,
			Rent:            jprop.Rent.Money,
			Investment:      jprop.Investment.investment(),
			RevenueOverride: snapshotMoney(jprop.RevenueOverride),
			ChargesOverride: snapshotMoney(jprop.ChargesOverride),
		}
		where = fmt.Sprintf("property %q", p.ID)
		if p.Financing, err = ParseFinancing(jprop.Financing); err != nil {
			d.warn("%s: %v, assuming %v", where, err, p.Financing)
		}
		mode, err := ParseEntryMode(jprop.ChargesEntry)
		if err != nil {
			d.warn("%s: %v, assuming monthly", where, err)
		}
		p.Charges = jprop.Charges.charges().Normalize(mode)
		p.Acquired = d.date(jprop.Acquired, where, "acquired")
		p.RentalStart = d.date(jprop.RentalStart, where, "rentalStart")
		p.Created = d.date(jprop.Created, where, "created")
		if jl := jprop.Loan; jl != nil {
			p.Loan = Loan{
				Principal: snapshotMoney(jl.Principal),
				Rate:      jl.Rate,
				Duration:  jl.Duration,
				Start:     d.date(jl.Start, where, "loan.start"),
				Payment:   snapshotMoney(jl.Payment),
			}
		}
		properties = append(properties, p)
	}

	lots := make([]Lot, 0, len(jp.Lots))
	for i, jl := range jp.Lots {
		lots = append(lots, Lot{
			ID:         d.id(jl.ID, fmt.Sprintf("lot #%d", i+1)),
			PropertyID: jl.PropertyID,
			Name:       jl.Name,
			Rent:       jl.Rent.Money,
			Default:    jl.Default,
		})
	}

	tenants := make([]Tenant, 0, len(jp.Tenants))
	for i, jt := range jp.Tenants {
		t := Tenant{
			ID:    d.id(jt.ID, fmt.Sprintf("tenant #%d", i+1)),
			LotID: jt.LotID,
			Name:  jt.Name,
			Aid:   jt.Aid.Money,
			Share: jt.Share,
		}
		where := fmt.Sprintf("tenant %q", t.ID)
		if t.Mode, err = ParsePaymentMode(jt.PaymentMode); err != nil {
			d.warn("%s: %v, assuming %s", where, err, t.Mode)
		}
		t.MoveIn = d.date(jt.MoveIn, where, "moveIn")
		tenants = append(tenants, t)
	}

	payments := make([]PaymentRecord, 0, len(jp.Payments))
	for i, jpay := range jp.Payments {
		where := fmt.Sprintf("payment #%d", i+1)
		m, err := ParseMonth(jpay.Month)
		if err != nil {
			d.warn("%s: %v, record ignored", where, err)
			continue
		}
		payments = append(payments, PaymentRecord{
			Month:     m,
			TenantID:  jpay.TenantID,
			LotID:     jpay.LotID,
			Paid:      jpay.Paid,
			AidPaid:   jpay.AidPaid,
			PaidOn:    d.date(jpay.PaidOn, where, "paidOn"),
			AidPaidOn: d.date(jpay.AidPaidOn, where, "aidPaidOn"),
		})
	}

	if jp.Currency != "" {
		currency = strings.ToUpper(jp.Currency)
	}
	pf, err := NewPortfolio(currency, properties, lots, tenants, payments)
	if err != nil {
		return nil, d.warnings, fmt.Errorf("invalid portfolio: %w", err)
	}
	return pf, d.warnings, nil
}

// Snapshot records. Dates and enums are read as strings so a bad value is a
// warning, not an error.
type jloan struct {
	Principal Optional[amount]  `json:"principal"`
	Rate      Optional[float64] `json:"rate"`
	Duration  Optional[int]     `json:"duration"`
	Start     string            `json:"start,omitempty"`
	Payment   Optional[amount]  `json:"payment"`
}

type jcharges struct {
	PropertyTax  amount `json:"propertyTax"`
	CoOwnership  amount `json:"coOwnership"`
	Insurance    amount `json:"insurance"`
	Management   amount `json:"management"`
	OtherCharges amount `json:"other"`
}

func snapshotCharges(c Charges) jcharges {
	return jcharges{amount{c.PropertyTax}, amount{c.CoOwnership}, amount{c.Insurance}, amount{c.Management}, amount{c.OtherCharges}}
}

func (c jcharges) charges() Charges {
	return Charges{
		PropertyTax:  c.PropertyTax.Money,
		CoOwnership:  c.CoOwnership.Money,
		Insurance:    c.Insurance.Money,
		Management:   c.Management.Money,
		OtherCharges: c.OtherCharges.Money,
	}
}

type jinvestment struct {
	PurchasePrice amount `json:"purchasePrice"`
	NotaryFees    amount `json:"notaryFees"`
	InitialWorks  amount `json:"initialWorks"`
	OtherCosts    amount `json:"otherCosts"`
}

func snapshotInvestment(i Investment) jinvestment {
	return jinvestment{amount{i.PurchasePrice}, amount{i.NotaryFees}, amount{i.InitialWorks}, amount{i.OtherCosts}}
}

func (i jinvestment) investment() Investment {
	return Investment{
		PurchasePrice: i.PurchasePrice.Money,
		NotaryFees:    i.NotaryFees.Money,
		InitialWorks:  i.InitialWorks.Money,
		OtherCosts:    i.OtherCosts.Money,
	}
}

type jproperty struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Financing       string           `json:"financing"`
	Rent            amount           `json:"rent"`
	Charges         jcharges         `json:"charges"`
	ChargesEntry    string           `json:"chargesEntry"`
	Loan            *jloan           `json:"loan,omitempty"`
	Investment      jinvestment      `json:"investment"`
	Acquired        string           `json:"acquired,omitempty"`
	RentalStart     string           `json:"rentalStart,omitempty"`
	Created         string           `json:"created,omitempty"`
	RevenueOverride Optional[amount] `json:"revenueOverride"`
	ChargesOverride Optional[amount] `json:"chargesOverride"`
}

type jlot struct {
	ID         string `json:"id"`
	PropertyID string `json:"propertyId"`
	Name       string `json:"name"`
	Rent       amount `json:"rent"`
	Default    bool   `json:"default"`
}

type jtenant struct {
	ID          string          `json:"id"`
	LotID       string          `json:"lotId"`
	Name        string          `json:"name"`
	Aid         amount          `json:"aid"`
	PaymentMode string          `json:"paymentMode"`
	Share       Optional[Ratio] `json:"share"`
	MoveIn      string          `json:"moveIn,omitempty"`
}

type jpayment struct {
	Month     string `json:"month"`
	TenantID  string `json:"tenantId"`
	LotID     string `json:"lotId,omitempty"`
	Paid      bool   `json:"paid"`
	AidPaid   bool   `json:"aidPaid"`
	PaidOn    string `json:"paidOn,omitempty"`
	AidPaidOn string `json:"aidPaidOn,omitempty"`
}

type jportfolio struct {
	Currency   string      `json:"currency"`
	Properties []jproperty `json:"properties"`
	Lots       []jlot      `json:"lots"`
	Tenants    []jtenant   `json:"tenants"`
	Payments   []jpayment  `json:"payments"`
}

// amount is a snapshot amount. Unlike Money in reports, it is written with
// all its decimals so a snapshot reads back exactly.
type amount struct{ Money }

func (a amount) MarshalJSON() ([]byte, error) { return []byte(a.value.String()), nil }

func (a *amount) UnmarshalJSON(b []byte) error { return a.Money.UnmarshalJSON(b) }

func snapshotAmount(o Optional[Money]) Optional[amount] {
	if m, ok := o.Get(); ok {
		return Some(amount{m})
	}
	return None[amount]()
}

func snapshotMoney(o Optional[amount]) Optional[Money] {
	if a, ok := o.Get(); ok {
		return Some(a.Money)
	}
	return None[Money]()
}

// decoder collects warnings while converting lenient fields.
type decoder struct {
	warnings []string
}

func (d *decoder) warn(format string, args ...any) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}

// date parses a snapshot date. Empty is the zero date, silently.
func (d *decoder) date(s, where, field string) Date {
	if strings.TrimSpace(s) == "" {
		return Date{}
	}
	on, err := ParseDate(s)
	if err != nil {
		d.warn("%s: %s: %v, ignored", where, field, err)
		return Date{}
	}
	return on
}

// id returns id, or a fresh one when it is empty.
func (d *decoder) id(id, where string) string {
	if id != "" {
		return id
	}
	id = uuid.NewString()
	d.warn("%s has no id, using %s", where, id)
	return id
}

// yamlToJSON converts a YAML document into the equivalent JSON, so both
// formats share the same decoder.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("format error in portfolio: %w", err)
	}
	if doc == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("format error in portfolio: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePortfolio writes the portfolio as an indented JSON snapshot that
// DecodePortfolio reads back unchanged. Amounts are written with all their
// decimals, charges are written monthly.
func EncodePortfolio(w io.Writer, pf *Portfolio) error {
	jp := jportfolio{
		Currency:   pf.Currency,
		Properties: make([]jproperty, 0, len(pf.Properties)),
		Lots:       make([]jlot, 0, len(pf.Lots)),
		Tenants:    make([]jtenant, 0, len(pf.Tenants)),
		Payments:   make([]jpayment, 0, len(pf.Payments)),
	}
	for _, p := range pf.Properties {
		jprop := jproperty{
			ID:              p.ID,
			Name:            p.Name,
			Financing:       p.Financing.String(),
			Rent:            amount{p.Rent},
			Charges:         snapshotCharges(p.Charges),
			ChargesEntry:    "monthly",
			Investment:      snapshotInvestment(p.Investment),
			Acquired:        p.Acquired.String(),
			RentalStart:     p.RentalStart.String(),
			Created:         p.Created.String(),
			RevenueOverride: snapshotAmount(p.RevenueOverride),
			ChargesOverride: snapshotAmount(p.ChargesOverride),
		}
		if p.Financing == Credit || p.Loan.isSet() {
			jprop.Loan = &jloan{
				Principal: snapshotAmount(p.Loan.Principal),
				Rate:      p.Loan.Rate,
				Duration:  p.Loan.Duration,
				Start:     p.Loan.Start.String(),
				Payment:   snapshotAmount(p.Loan.Payment),
			}
		}
		jp.Properties = append(jp.Properties, jprop)
	}
	for _, l := range pf.Lots {
		jp.Lots = append(jp.Lots, jlot{ID: l.ID, PropertyID: l.PropertyID, Name: l.Name, Rent: amount{l.Rent}, Default: l.Default})
	}
	for _, t := range pf.Tenants {
		jp.Tenants = append(jp.Tenants, jtenant{
			ID:          t.ID,
			LotID:       t.LotID,
			Name:        t.Name,
			Aid:         amount{t.Aid},
			PaymentMode: string(t.Mode),
			Share:       t.Share,
			MoveIn:      t.MoveIn.String(),
		})
	}
	for _, r := range pf.Payments {
		jp.Payments = append(jp.Payments, jpayment{
			Month:     r.Month.String(),
			TenantID:  r.TenantID,
			LotID:     r.LotID,
			Paid:      r.Paid,
			AidPaid:   r.AidPaid,
			PaidOn:    r.PaidOn.String(),
			AidPaidOn: r.AidPaidOn.String(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jp)
}
