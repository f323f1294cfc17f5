package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProductUnitAmount(t *testing.T) {
	cases := []struct {
		price string
		want  int64
	}{
		{"10.00", 1000},
		{"5.50", 550},
		{"0.99", 99},
		{"0", 0},
		{"19.999", 1999}, // fractional cents truncate
	}
	for _, tc := range cases {
		p := Product{Price: decimal.RequireFromString(tc.price)}
		if got := p.UnitAmount(); got != tc.want {
			t.Fatalf("price %s: expected %d, got %d", tc.price, tc.want, got)
		}
	}
}
