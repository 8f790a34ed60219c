package domain

import (
	"errors"
	"testing"
)

func TestNormalizePrice(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		raw        string
		defaultCur string
		wantMinor  int64
		wantCur    string
		wantErr    bool
	}{
		{name: "comma decimal with code", raw: "12,99 EUR", defaultCur: "EUR", wantMinor: 1299, wantCur: "EUR"},
		{name: "euro sign default currency", raw: "9.50€", defaultCur: "EUR", wantMinor: 950, wantCur: "EUR"},
		{name: "leading code", raw: "USD 7", defaultCur: "EUR", wantMinor: 700, wantCur: "USD"},
		{name: "bare integer", raw: "7", defaultCur: "EUR", wantMinor: 700, wantCur: "EUR"},
		{name: "code glued to amount", raw: "9.50EUR", defaultCur: "USD", wantMinor: 950, wantCur: "EUR"},
		{name: "lowercase default normalized", raw: "3.10", defaultCur: "eur", wantMinor: 310, wantCur: "EUR"},
		{name: "empty", raw: "", defaultCur: "EUR", wantErr: true},
		{name: "whitespace only", raw: "   ", defaultCur: "EUR", wantErr: true},
		{name: "no digits", raw: "abc", defaultCur: "EUR", wantErr: true},
		{name: "free text", raw: "free", defaultCur: "EUR", wantErr: true},
		{name: "multiple separators", raw: "1.2.3 EUR", defaultCur: "EUR", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			minor, currency, err := NormalizePrice(tc.raw, tc.defaultCur)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got (%d, %s)", tc.raw, minor, currency)
				}
				if !errors.Is(err, ErrInvalidPrice) {
					t.Fatalf("expected ErrInvalidPrice, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalize %q: %v", tc.raw, err)
			}
			if minor != tc.wantMinor || currency != tc.wantCur {
				t.Fatalf("normalize %q: got (%d, %s), want (%d, %s)", tc.raw, minor, currency, tc.wantMinor, tc.wantCur)
			}
		})
	}
}

func TestNormalizePriceIdempotentOnCanonicalForm(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"12,99 EUR", "9.50€", "USD 7", "0,05 GBP"} {
		minor, currency, err := NormalizePrice(raw, "EUR")
		if err != nil {
			t.Fatalf("normalize %q: %v", raw, err)
		}
		canonical := FormatPrice(minor, currency)
		minor2, currency2, err := NormalizePrice(canonical, "EUR")
		if err != nil {
			t.Fatalf("re-normalize %q: %v", canonical, err)
		}
		if minor2 != minor || currency2 != currency {
			t.Fatalf("re-normalizing %q gave (%d, %s), want (%d, %s)", canonical, minor2, currency2, minor, currency)
		}
	}
}
