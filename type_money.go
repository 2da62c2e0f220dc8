package patrimoine

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
//
// Records decoded from a snapshot carry no currency: the "" currency is weak and
// adopts the currency of whatever it is combined with.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	if m.cur == "" {
		return m.value.StringFixed(2)
	}
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(r Ratio) Money               { return Money{value: m.value.Mul(r.value), cur: m.cur} }
func (m Money) Times(n int) Money               { return Money{value: m.value.Mul(decimal.NewFromInt(int64(n))), cur: m.cur} }
func (m Money) Div(n int) Money                 { return Money{value: m.value.Div(decimal.NewFromInt(int64(n))), cur: m.cur} }

// Equal reports whether both amounts are equal. The weak "" currency matches any currency.
func (m Money) Equal(n Money) bool {
	return m.value.Equal(n.value) && (m.cur == n.cur || m.cur == "" || n.cur == "")
}

// DivMoney returns the ratio m/n. It panics if n is zero, callers guard the denominator.
func (m Money) DivMoney(n Money) Ratio { return Ratio{value: m.value.Div(n.value)} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// In returns the same amount expressed in currency c. It is meant for records
// that were decoded without a currency.
func (m Money) In(c string) Money { return Money{value: m.value, cur: c} }

// Round rounds to the currency fraction (2 digits when the currency is unknown).
func (m Money) Round() Money {
	places := int32(2)
	if m.cur != "" {
		places = int32(m.currency().Fraction)
	}
	return Money{value: m.value.Round(places), cur: m.cur}
}

// Clamp restricts m into [lo, hi].
func (m Money) Clamp(lo, hi Money) Money {
	if m.LessThan(lo) {
		return lo
	}
	if m.GreaterThan(hi) {
		return hi
	}
	return m
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// float is used where compounding has to leave exact arithmetic.
func (m Money) float() float64 { return m.value.InexactFloat64() }

// Sum adds all amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// ValidateCurrency checks that code is a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// MarshalJSON writes the amount as a plain json number, rounded to the currency fraction.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Round().value.String()), nil
}

// UnmarshalJSON accepts a json number or a numeric string. The currency is left
// unset, the portfolio assigns it.
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(b), err)
	}
	*m = Money{value: d}
	return nil
}
