package patrimoine

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Issue is a sanity problem found in the records. Issues never stop the
// engine, they explain figures that look wrong.
type Issue struct {
	Record  string `json:"record"` // e.g. property "p1"
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Record + ": " + i.Message
	}
	return i.Record + ": " + i.Field + ": " + i.Message
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// recordValidator returns the struct tag validator. Money is validated as its
// float value so numeric tags like gte apply to it.
func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterCustomTypeFunc(func(v reflect.Value) any {
			if m, ok := v.Interface().(Money); ok {
				return m.float()
			}
			return nil
		}, Money{})
		// Use JSON tag names for field names in issues
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// fieldIssues validates the struct tags of a record.
func fieldIssues(record string, v any) []Issue {
	err := recordValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Record: record, Message: err.Error()}}
	}
	var res []Issue
	for _, e := range verrs {
		// drop the root struct name from the namespace
		field := e.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		res = append(res, Issue{Record: record, Field: field, Message: fieldMessage(e)})
	}
	return res
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be greater than or equal to " + e.Param()
	default:
		return "invalid value"
	}
}

// ValidatePortfolio checks the records for inconsistencies the engine
// tolerates but the owner should fix: negative amounts, missing loan terms on
// a CREDIT property, lot rents that do not add up, dangling references, aid
// larger than the rent.
func ValidatePortfolio(pf *Portfolio) []Issue {
	var issues []Issue
	add := func(record, field, format string, args ...any) {
		issues = append(issues, Issue{Record: record, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	for i := range pf.Properties {
		p := &pf.Properties[i]
		rec := fmt.Sprintf("property %q", p.ID)
		issues = append(issues, fieldIssues(rec, p)...)

		if p.Financing == Credit {
			if !p.Loan.Principal.IsSet() {
				add(rec, "loan.principal", "missing on a CREDIT property, read as 0")
			}
			if !p.Loan.Rate.IsSet() {
				add(rec, "loan.rate", "missing on a CREDIT property, read as 0")
			}
			switch d := p.Loan.Duration.Or(0); {
			case !p.Loan.Duration.IsSet():
				add(rec, "loan.duration", "missing on a CREDIT property, read as 0")
			case d <= 0 || d > MaxLoanDuration:
				add(rec, "loan.duration", "%d months is out of range (1 to %d)", d, MaxLoanDuration)
			}
			if r := p.Loan.Rate.Or(0); r < 0 {
				add(rec, "loan.rate", "negative rate %v%%", r)
			}
			if m, ok := p.Loan.Principal.Get(); ok && m.IsNegative() {
				add(rec, "loan.principal", "must be greater than or equal to 0")
			}
		}
		if !p.Acquired.IsZero() && !p.RentalStart.IsZero() && p.RentalStart.Before(p.Acquired) {
			add(rec, "rentalStart", "%s is before the acquisition on %s", p.RentalStart, p.Acquired)
		}
		if mm, ok := pf.lotMismatch(p); ok {
			add(rec, "rent", "lot rents sum to %s, the property rent is %s", mm.LotsRent, mm.PropertyRent)
		}
	}

	for i := range pf.Lots {
		l := &pf.Lots[i]
		rec := fmt.Sprintf("lot %q", l.ID)
		issues = append(issues, fieldIssues(rec, l)...)
		if _, ok := pf.Property(l.PropertyID); !ok && l.PropertyID != "" {
			add(rec, "propertyId", "unknown property %q", l.PropertyID)
		}
	}

	lots := make(map[string]*Lot, len(pf.Lots))
	for i := range pf.Lots {
		lots[pf.Lots[i].ID] = &pf.Lots[i]
	}
	for i := range pf.Tenants {
		t := &pf.Tenants[i]
		rec := fmt.Sprintf("tenant %q", t.ID)
		issues = append(issues, fieldIssues(rec, t)...)
		lot, ok := lots[t.LotID]
		if !ok {
			if t.LotID != "" {
				add(rec, "lotId", "unknown lot %q", t.LotID)
			}
			continue
		}
		rent := TenantRent(t, lot, pf.TenantsOf(lot.ID))
		if TenantNetRent(t, rent).IsNegative() {
			add(rec, "aid", "aid %s exceeds the rent %s", t.Aid, rent)
		}
		if p, ok := pf.Property(lot.PropertyID); ok && !t.MoveIn.IsZero() {
			if acquired := p.Acquired; !acquired.IsZero() && t.MoveIn.Before(acquired) {
				add(rec, "moveIn", "%s is before the acquisition on %s", t.MoveIn, acquired)
			}
		}
		if s, ok := t.Share.Get(); ok && (s.IsNegative() || s.GreaterThan(R(1))) {
			add(rec, "share", "%s is not between 0 and 1", s)
		}
	}
	for i := range pf.Lots {
		lot := &pf.Lots[i]
		total, explicit := R(0), false
		for _, t := range pf.TenantsOf(lot.ID) {
			if s, ok := t.Share.Get(); ok {
				total, explicit = total.Add(s), true
			}
		}
		if explicit && total.GreaterThan(R(1)) {
			add(fmt.Sprintf("lot %q", lot.ID), "tenants", "tenant shares sum to %s, more than the whole rent", total)
		}
	}

	tenants := make(map[string]bool, len(pf.Tenants))
	for _, t := range pf.Tenants {
		tenants[t.ID] = true
	}
	for _, p := range pf.Payments {
		rec := fmt.Sprintf("payment %s", p.Month)
		tenant, ok := pf.payer(p)
		switch {
		case !ok && p.LotID == "":
			add(rec, "tenantId", "is required")
		case !ok:
			add(rec, "lotId", "lot %q does not have exactly one tenant, record ignored", p.LotID)
		case !tenants[tenant]:
			add(rec, "tenantId", "unknown tenant %q", tenant)
		}
	}
	return issues
}
