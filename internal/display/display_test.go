package display

import (
	"math"
	"testing"
)

func TestValueTrimsTrailingZeros(t *testing.T) {
	cases := map[float64]string{
		7:        "7",
		7.5:      "7.5",
		7.50:     "7.5",
		0.1:      "0.1",
		-3.25:    "-3.25",
		1000000:  "1000000",
		0.000001: "0.000001",
	}
	for in, want := range cases {
		if got := Value(in); got != want {
			t.Errorf("Value(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestValueSpecialCases(t *testing.T) {
	if got := Value(math.NaN()); got != "NaN" {
		t.Errorf("Value(NaN) = %q, want NaN", got)
	}
	if got := Value(math.Inf(1)); got != "Inf" {
		t.Errorf("Value(+Inf) = %q, want Inf", got)
	}
	if got := Value(math.Inf(-1)); got != "-Inf" {
		t.Errorf("Value(-Inf) = %q, want -Inf", got)
	}
}

func TestQuantityWithAndWithoutUnit(t *testing.T) {
	if got := Quantity(9.8, "m/s^2"); got != "9.8 m/s^2" {
		t.Errorf("Quantity = %q", got)
	}
	if got := Quantity(9.8, ""); got != "9.8" {
		t.Errorf("Quantity with no unit = %q", got)
	}
}
