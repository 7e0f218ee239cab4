// Package format renders backend values for display. Money is formatted
// through shopspring/decimal so the stored string is never rewritten.
package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dooficoin/doofigame/internal/domain"
)

// exponentialBelow is the magnitude under which amounts switch to
// exponential notation.
var exponentialBelow = decimal.New(1, -6)

// Balance is the header wallet format: 0, 2-digit exponential below
// 0.000001, otherwise 6 fixed decimals.
func Balance(d domain.Decimal) string {
	return amount(d, 2, 6)
}

// DoofiCoin is the mining panel format: 6-digit exponential below 0.000001,
// otherwise 12 fixed decimals.
func DoofiCoin(d domain.Decimal) string {
	return amount(d, 6, 12)
}

// Fixed renders d with exactly places decimals.
func Fixed(d domain.Decimal, places int32) string {
	v, err := d.Value()
	if err != nil {
		return d.String()
	}
	return v.StringFixed(places)
}

func amount(d domain.Decimal, expDigits, fixedDigits int32) string {
	v, err := d.Value()
	if err != nil {
		return d.String()
	}
	if v.IsZero() {
		return "0"
	}
	if v.LessThan(exponentialBelow) {
		return Exponential(v, expDigits)
	}
	return v.StringFixed(fixedDigits)
}

// Exponential renders v as m.mmm e±x with digits mantissa decimals.
func Exponential(v decimal.Decimal, digits int32) string {
	if v.IsZero() {
		return decimal.Zero.StringFixed(digits) + "e+0"
	}

	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}

	coefDigits := int32(len(v.Coefficient().String()))
	exp := coefDigits - 1 + v.Exponent()

	mantissa := v.Shift(-exp).Round(digits)
	if mantissa.GreaterThanOrEqual(decimal.NewFromInt(10)) {
		mantissa = mantissa.Shift(-1).Round(digits)
		exp++
	}

	expSign := "+"
	if exp < 0 {
		expSign = "-"
		exp = -exp
	}
	return fmt.Sprintf("%s%se%s%d", sign, mantissa.StringFixed(digits), expSign, exp)
}

// WithSymbol appends the currency symbol.
func WithSymbol(s string) string {
	return s + " " + domain.CurrencySymbol
}

var titler = cases.Title(language.BrazilianPortuguese)

// Title capitalises a backend enum value for display ("legendary_sword" ->
// "Legendary Sword").
func Title(s string) string {
	return titler.String(strings.ReplaceAll(s, "_", " "))
}

// Percent renders a 0..1 ratio as a whole percentage.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.0f%%", ratio*100)
}

// Bar draws a fixed-width text progress bar for 0..100.
func Bar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
