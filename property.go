package patrimoine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Financing is how a property was paid for.
type Financing int

const (
	Cash Financing = iota
	Credit
)

func (f Financing) String() string {
	switch f {
	case Cash:
		return "CASH"
	case Credit:
		return "CREDIT"
	default:
		return "UNKNOWN"
	}
}

// ParseFinancing parses "CASH" or "CREDIT", case insensitive. An empty
// string is Cash.
func ParseFinancing(s string) (Financing, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CASH", "":
		return Cash, nil
	case "CREDIT":
		return Credit, nil
	default:
		return Cash, fmt.Errorf("unknown financing %q", s)
	}
}

func (f Financing) MarshalJSON() ([]byte, error) { return json.Marshal(f.String()) }

func (f *Financing) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseFinancing(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Charges are the recurring costs of a property. PropertyTax is annual, every
// other component is monthly.
type Charges struct {
	PropertyTax  Money `json:"propertyTax" validate:"gte=0"`
	CoOwnership  Money `json:"coOwnership" validate:"gte=0"`
	Insurance    Money `json:"insurance" validate:"gte=0"`
	Management   Money `json:"management" validate:"gte=0"`
	OtherCharges Money `json:"other" validate:"gte=0"`
}

// Loan holds the terms of a CREDIT property's mortgage. Unset fields read as 0.
type Loan struct {
	Principal Optional[Money]   `json:"principal"`
	Rate      Optional[float64] `json:"rate"`     // annual, in percent
	Duration  Optional[int]     `json:"duration"` // months
	Start     Date              `json:"start"`
	// Payment is the monthly payment quoted by the bank, if known.
	Payment Optional[Money] `json:"payment"`
}

// Investment is what it cost to acquire the property.
type Investment struct {
	PurchasePrice Money `json:"purchasePrice" validate:"gte=0"`
	NotaryFees    Money `json:"notaryFees" validate:"gte=0"`
	InitialWorks  Money `json:"initialWorks" validate:"gte=0"`
	OtherCosts    Money `json:"otherCosts" validate:"gte=0"`
}

// Total returns purchase price + notary fees + initial works + other costs.
func (i Investment) Total() Money {
	return Sum(i.PurchasePrice, i.NotaryFees, i.InitialWorks, i.OtherCosts)
}

// Property is a rental property as supplied by the CRUD layer. The engine
// only reads it.
type Property struct {
	ID         string     `json:"id" validate:"required"`
	Name       string     `json:"name"`
	Financing  Financing  `json:"financing"`
	Rent       Money      `json:"rent" validate:"gte=0"` // monthly
	Charges    Charges    `json:"charges"`
	Loan       Loan       `json:"loan"`
	Investment Investment `json:"investment"`

	Acquired    Date `json:"acquired"`
	RentalStart Date `json:"rentalStart"`
	Created     Date `json:"created"`

	// Manual figures entered by the owner, they replace the engine estimates.
	RevenueOverride Optional[Money] `json:"revenueOverride"`
	ChargesOverride Optional[Money] `json:"chargesOverride"`
}

// LoanPayment returns the monthly loan payment, 0 for a CASH property.
func (p *Property) LoanPayment() Money {
	if p.Financing != Credit {
		return Money{}
	}
	return p.Loan.MonthlyPayment()
}

// MonthlyCharges returns the property's charges normalized to one month.
func (p *Property) MonthlyCharges() Money { return MonthlyCharges(p.Charges) }

// ownedSince returns the date from which the property is considered rented:
// the rental start, or the acquisition date.
func (p *Property) ownedSince() Date { return p.RentalStart.Or(p.Acquired) }

// acquiredOn resolves the acquisition date through the fallback chain
// acquisition -> creation -> now.
func (p *Property) acquiredOn(now Date) Date { return p.Acquired.Or(p.Created).Or(now) }

// loanStart resolves the loan start through the fallback chain
// loan start -> acquisition -> creation -> now.
func (p *Property) loanStart(now Date) Date { return p.Loan.Start.Or(p.acquiredOn(now)) }

// withCurrency returns a copy of p where every amount is expressed in c.
func (p Property) withCurrency(c string) Property {
	p.Rent = p.Rent.In(c)
	p.Charges = Charges{
		PropertyTax:  p.Charges.PropertyTax.In(c),
		CoOwnership:  p.Charges.CoOwnership.In(c),
		Insurance:    p.Charges.Insurance.In(c),
		Management:   p.Charges.Management.In(c),
		OtherCharges: p.Charges.OtherCharges.In(c),
	}
	p.Investment = Investment{
		PurchasePrice: p.Investment.PurchasePrice.In(c),
		NotaryFees:    p.Investment.NotaryFees.In(c),
		InitialWorks:  p.Investment.InitialWorks.In(c),
		OtherCosts:    p.Investment.OtherCosts.In(c),
	}
	p.Loan.Principal = inCurrency(p.Loan.Principal, c)
	p.Loan.Payment = inCurrency(p.Loan.Payment, c)
	p.RevenueOverride = inCurrency(p.RevenueOverride, c)
	p.ChargesOverride = inCurrency(p.ChargesOverride, c)
	return p
}

func inCurrency(o Optional[Money], c string) Optional[Money] {
	if v, ok := o.Get(); ok {
		return Some(v.In(c))
	}
	return o
}

// Lot is a rentable sub-unit of a property.
type Lot struct {
	ID         string `json:"id" validate:"required"`
	PropertyID string `json:"propertyId" validate:"required"`
	Name       string `json:"name"`
	Rent       Money  `json:"rent" validate:"gte=0"` // monthly
	Default    bool   `json:"default"`
}

// isSet reports whether any term of the loan is known.
func (l Loan) isSet() bool {
	return l.Principal.IsSet() || l.Rate.IsSet() || l.Duration.IsSet() || l.Payment.IsSet() || !l.Start.IsZero()
}
