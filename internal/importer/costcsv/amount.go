package costcsv

import (
	"strings"

	"github.com/shopspring/decimal"
)

var digits = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
)

// latinDigits rewrites Persian and Arabic-Indic digits as ASCII.
func latinDigits(s string) string {
	return digits.Replace(s)
}

var amountNoise = strings.NewReplacer(",", "", "٬", "", "،", "", " ", "", "‌", "", "تومان", "", "٫", ".")

// parseTomanAmount parses an amount in Toman, rounded to a whole number.
// Format examples: "2,500,000" -> 2500000, "۵۰۰٬۰۰۰" -> 500000, "1200.6" -> 1201.
func parseTomanAmount(s string) (int64, error) {
	clean := amountNoise.Replace(latinDigits(s))

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(0).IntPart(), nil
}
