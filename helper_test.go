package patrimoine

import "testing"

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// assertMoney fails when got and want differ once rounded to the cent.
func assertMoney(t *testing.T, what string, got, want Money) {
	t.Helper()
	if !got.Round().Equal(want.Round()) {
		t.Errorf("%s = %v, want %v", what, got.Round(), want.Round())
	}
}

// assertPercent fails when got is not computable or not close to want.
func assertPercent(t *testing.T, what string, got Percent, ok bool, want Percent) {
	t.Helper()
	if !ok {
		t.Errorf("%s is not computable, want %v", what, want)
		return
	}
	if !got.Equal(want) {
		t.Errorf("%s = %v, want %v", what, got, want)
	}
}
