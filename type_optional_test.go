package patrimoine

import (
	"encoding/json"
	"testing"
)

func TestOptional_JSON(t *testing.T) {
	tests := []struct {
		input  string
		want   float64
		wantOK bool
	}{
		{`null`, 0, false},
		{`0`, 0, true},
		{`3.5`, 3.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var o Optional[float64]
			if err := json.Unmarshal([]byte(tt.input), &o); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			got, ok := o.Get()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Get() = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
			b, err := json.Marshal(o)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != tt.input {
				t.Errorf("Marshal() = %s, want %s", b, tt.input)
			}
		})
	}
}

func TestOptional_Or(t *testing.T) {
	if got := None[int]().Or(240); got != 240 {
		t.Errorf("None().Or(240) = %d, want 240", got)
	}
	if got := Some(0).Or(240); got != 0 {
		t.Errorf("Some(0).Or(240) = %d, want 0", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		override Optional[Money]
		want     Money
		wantOver bool
		wantJSON string
	}{
		{"computed", None[Money](), EUR(100), false, `{"value":100}`},
		{"override", Some(EUR(250)), EUR(250), true, `{"value":250,"overridden":true}`},
		{"zero override", Some(EUR(0)), EUR(0), true, `{"value":0,"overridden":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Resolve(tt.override, EUR(100))
			if !m.Value().Equal(tt.want) || m.IsOverridden() != tt.wantOver {
				t.Errorf("Resolve() = %v (overridden %v), want %v (%v)", m.Value(), m.IsOverridden(), tt.want, tt.wantOver)
			}
			b, err := json.Marshal(m)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != tt.wantJSON {
				t.Errorf("Marshal() = %s, want %s", b, tt.wantJSON)
			}
		})
	}
}
