package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Symbol is the currency symbol used across the storefront. Prices are
// whole currency units, not minor units.
const Symbol = "฿"

// Format renders an amount for display, e.g. 1500 -> "฿1,500".
// Fractional amounts keep two decimals: 1500.5 -> "฿1,500.50".
func Format(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	// round to cents first so a fraction like .995 carries into the whole
	// amount instead of rendering as a third digit
	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	grouped := groupThousands(strconv.FormatInt(whole, 10))
	out := Symbol + grouped
	if frac != 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	if neg {
		out = "-" + out
	}
	return out
}

// DiscountPercent returns the rounded markdown percentage between an
// original price and the current price. Returns 0 when there is no real
// markdown (missing original, or original not above current).
func DiscountPercent(original, price float64) int {
	if original <= 0 || original <= price {
		return 0
	}
	return int(math.Round((original - price) / original * 100))
}

// Savings is the absolute amount saved against the original price, never
// negative.
func Savings(original, price float64) float64 {
	if original <= price {
		return 0
	}
	return original - price
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
