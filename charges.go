package patrimoine

import (
	"fmt"
	"strings"
)

// MonthlyCharges normalizes the charges of a property into a single monthly
// figure: the annual property tax divided by 12 plus every monthly component.
// Absent components are 0.
func MonthlyCharges(c Charges) Money {
	return Sum(c.PropertyTax.Div(12), c.CoOwnership, c.Insurance, c.Management, c.OtherCharges)
}

// EntryMode is how the owner typed the monthly charge components in.
type EntryMode int

const (
	EntryMonthly EntryMode = iota
	EntryAnnual
)

// ParseEntryMode parses "monthly" or "annual". Empty is monthly.
func ParseEntryMode(s string) (EntryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monthly":
		return EntryMonthly, nil
	case "annual", "yearly":
		return EntryAnnual, nil
	default:
		return EntryMonthly, fmt.Errorf("unknown charges entry mode %q", s)
	}
}

// Normalize converts charges captured in the given mode into the monthly
// convention MonthlyCharges expects. It must be applied once, at capture
// time. The property tax is always annual and is left untouched.
func (c Charges) Normalize(mode EntryMode) Charges {
	if mode != EntryAnnual {
		return c
	}
	return Charges{
		PropertyTax:  c.PropertyTax,
		CoOwnership:  c.CoOwnership.Div(12),
		Insurance:    c.Insurance.Div(12),
		Management:   c.Management.Div(12),
		OtherCharges: c.OtherCharges.Div(12),
	}
}

// Scale returns every component multiplied by r.
func (c Charges) Scale(r Ratio) Charges {
	return Charges{
		PropertyTax:  c.PropertyTax.Mul(r),
		CoOwnership:  c.CoOwnership.Mul(r),
		Insurance:    c.Insurance.Mul(r),
		Management:   c.Management.Mul(r),
		OtherCharges: c.OtherCharges.Mul(r),
	}
}
