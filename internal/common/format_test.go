package common

import "testing"

func TestFormatSignedAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{10000, "+10000.00 PLN"},
		{0, "+0.00 PLN"},
		{500.5, "+500.50 PLN"},
		{-123.45, "-123.45 PLN"},
		{-0.5, "-0.50 PLN"},
	}
	for _, c := range cases {
		if got := FormatSignedAmount(c.in); got != c.want {
			t.Errorf("FormatSignedAmount(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatSignedPercent(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{11.11, "+11.11%"},
		{0, "+0.00%"},
		{-8.3, "-8.30%"},
		{15.5, "+15.50%"},
	}
	for _, c := range cases {
		if got := FormatSignedPercent(c.in); got != c.want {
			t.Errorf("FormatSignedPercent(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
