package main

import "testing"

func TestParseLot(t *testing.T) {
	cases := []struct {
		in     string
		ticker string
		amount float64
		ok     bool
	}{
		{"100xRAT", "RAT", 100, true},
		{"2XSME", "SME", 2, true},
		{"rat", "RAT", 1, true},
		{"EXT", "EXT", 1, true},
		{"0xRAT", "", 0, false},
		{"100x", "", 0, false},
		{"", "", 0, false},
	}
	for _, c := range cases {
		ticker, amount, err := parseLot(c.in)
		if c.ok && err != nil {
			t.Errorf("parseLot(%q): %v", c.in, err)
			continue
		}
		if !c.ok {
			if err == nil {
				t.Errorf("parseLot(%q) accepted", c.in)
			}
			continue
		}
		if ticker != c.ticker || amount != c.amount {
			t.Errorf("parseLot(%q) = %s, %v", c.in, ticker, amount)
		}
	}
}
