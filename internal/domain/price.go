package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyCodePattern = regexp.MustCompile(`[A-Z]{3}`)
	amountPattern       = regexp.MustCompile(`[0-9.,]+`)
)

// NormalizePrice extracts a minor-units amount and an ISO currency code
// from a free-text price field such as "12,99 EUR", "9.50€" or "USD 7".
// The first 3-uppercase-letter token wins as the currency; otherwise
// defaultCurrency applies. Failures return ErrInvalidPrice carrying the
// offending raw string; callers reject rather than substitute a price.
func NormalizePrice(raw, defaultCurrency string) (int64, string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, "", fmt.Errorf("%w: empty price string", ErrInvalidPrice)
	}

	currency := strings.ToUpper(strings.TrimSpace(defaultCurrency))
	if code := currencyCodePattern.FindString(text); code != "" {
		currency = code
		text = strings.Replace(text, code, "", 1)
	}
	text = strings.ReplaceAll(text, "€", "")

	amount := amountPattern.FindString(text)
	if !strings.ContainsAny(amount, "0123456789") {
		return 0, "", fmt.Errorf("%w: no digits in %q", ErrInvalidPrice, raw)
	}

	amount = strings.ReplaceAll(amount, ",", ".")
	if strings.Count(amount, ".") > 1 {
		return 0, "", fmt.Errorf("%w: malformed amount in %q", ErrInvalidPrice, raw)
	}

	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: unparseable amount in %q", ErrInvalidPrice, raw)
	}
	if value < 0 {
		return 0, "", fmt.Errorf("%w: negative amount in %q", ErrInvalidPrice, raw)
	}
	return int64(math.Round(value * 100)), currency, nil
}

// FormatPrice renders the canonical form of a normalized price, e.g.
// (1299, "EUR") -> "12.99 EUR". Re-normalizing the canonical form
// yields the same pair.
func FormatPrice(minorUnits int64, currency string) string {
	return fmt.Sprintf("%d.%02d %s", minorUnits/100, minorUnits%100, currency)
}
