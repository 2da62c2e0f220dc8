package patrimoine

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Ratio is a dimensionless multiplier: a lot's share of a property, a
// co-tenant's share of a lot, a compounding factor.
type Ratio struct {
	value decimal.Decimal
}

func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Ratio {
	return Ratio{value: newDecimal(value)}
}

func (r Ratio) Equal(p Ratio) bool       { return r.value.Equal(p.value) }
func (r Ratio) Mul(p Ratio) Ratio        { return Ratio{value: r.value.Mul(p.value)} }
func (r Ratio) Add(p Ratio) Ratio        { return Ratio{value: r.value.Add(p.value)} }
func (r Ratio) Sub(p Ratio) Ratio        { return Ratio{value: r.value.Sub(p.value)} }
func (r Ratio) IsZero() bool             { return r.value.IsZero() }
func (r Ratio) IsNegative() bool         { return r.value.IsNegative() }
func (r Ratio) GreaterThan(p Ratio) bool { return r.value.GreaterThan(p.value) }
func (r Ratio) Float() float64           { return r.value.InexactFloat64() }
func (r Ratio) String() string           { return r.value.String() }

// Percent converts the ratio into a percentage (0.052 -> 5.2).
func (r Ratio) Percent() Percent { return Percent(r.value.Shift(2).InexactFloat64()) }

// MarshalJSON implements the json.Marshaler interface.
func (r Ratio) MarshalJSON() ([]byte, error) {
	return []byte(r.value.String()), nil
}
func (r *Ratio) UnmarshalJSON(decimalBytes []byte) error {
	return r.value.UnmarshalJSON(decimalBytes)
}
