package patrimoine

import (
	"bytes"
	"encoding/json"
)

// Optional is a value that may be unset. Unset is distinct from the zero
// value: an unset loan rate is "unknown", a set 0 rate is an interest-free loan.
type Optional[T any] struct {
	v   T
	set bool
}

// Some returns a set Optional.
func Some[T any](v T) Optional[T] { return Optional[T]{v: v, set: true} }

// None returns an unset Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is set.
func (o Optional[T]) Get() (T, bool) { return o.v, o.set }

// IsSet reports whether a value was provided.
func (o Optional[T]) IsSet() bool { return o.set }

// Or returns the value when set, def otherwise.
func (o Optional[T]) Or(def T) T {
	if o.set {
		return o.v
	}
	return def
}

// MarshalJSON writes null for an unset value.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON treats null as unset.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Metric is a figure that is either computed by the engine or overridden by
// the owner. An override always wins.
type Metric struct {
	value    Money
	override bool
}

// Computed returns a Metric holding an engine estimate.
func Computed(m Money) Metric { return Metric{value: m} }

// Override returns a Metric holding a manually entered figure.
func Override(m Money) Metric { return Metric{value: m, override: true} }

// Resolve returns the override when one is set, the computed estimate otherwise.
func Resolve(override Optional[Money], computed Money) Metric {
	if v, ok := override.Get(); ok {
		return Override(v)
	}
	return Computed(computed)
}

func (m Metric) Value() Money       { return m.value }
func (m Metric) IsOverridden() bool { return m.override }

func (m Metric) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("value", m.value)
	w.Optional("overridden", m.override)
	return w.MarshalJSON()
}
