package common

import "fmt"

// Notification amounts are rendered in PLN with an explicit leading "+"
// for non-negative values; negatives keep the sign emitted by the number
// itself. No thousand grouping: the notification body is a plain-text
// contract.

// FormatSignedAmount formats a PLN amount with a +/- prefix,
// e.g. "+10000.00 PLN", "-123.45 PLN".
func FormatSignedAmount(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f PLN", v)
	}
	return fmt.Sprintf("%.2f PLN", v)
}

// FormatSignedPercent formats a percentage with a +/- prefix,
// e.g. "+11.11%", "-8.30%".
func FormatSignedPercent(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}
