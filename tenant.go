package patrimoine

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMode is how a tenant pays the rent.
type PaymentMode string

const (
	Transfer    PaymentMode = "transfer"
	DirectDebit PaymentMode = "direct_debit"
	Check       PaymentMode = "check"
	CashPayment PaymentMode = "cash"
)

// ParsePaymentMode parses a payment mode, case insensitive. An empty string is Transfer.
func ParsePaymentMode(s string) (PaymentMode, error) {
	switch m := PaymentMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return Transfer, nil
	case Transfer, DirectDebit, Check, CashPayment:
		return m, nil
	default:
		return Transfer, fmt.Errorf("unknown payment mode %q", s)
	}
}

func (m *PaymentMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParsePaymentMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Tenant occupies a lot. Aid is the housing subsidy (APL) paid on the
// tenant's behalf; it is netted out of what the tenant owes.
type Tenant struct {
	ID    string      `json:"id" validate:"required"`
	LotID string      `json:"lotId" validate:"required"`
	Name  string      `json:"name"`
	Aid   Money       `json:"aid" validate:"gte=0"` // monthly
	Mode  PaymentMode `json:"paymentMode"`
	// Share is the part of the lot rent owed by this tenant when the lot is
	// shared. Unset means an equal split between the lot's tenants.
	Share  Optional[Ratio] `json:"share"`
	MoveIn Date            `json:"moveIn"`
}

// PaymentRecord tracks one month of rent for one tenant. The tenant share
// and the aid share are paid independently. A record without a tenant ID
// belongs to the only tenant of its lot.
type PaymentRecord struct {
	Month     Month  `json:"month"`
	TenantID  string `json:"tenantId"`
	LotID     string `json:"lotId"`
	Paid      bool   `json:"paid"`
	AidPaid   bool   `json:"aidPaid"`
	PaidOn    Date   `json:"paidOn"`
	AidPaidOn Date   `json:"aidPaidOn"`
}
