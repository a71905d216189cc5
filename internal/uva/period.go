package uva

import "fmt"

// DueDate returns the statutory payment deadline for a declaration
// period: the 15th of the second month after the period (§21 Abs1 UStG),
// rolling over the year where needed.
func DueDate(year, month int) string {
	dueMonth := month + 2
	dueYear := year
	if dueMonth > 12 {
		dueMonth -= 12
		dueYear++
	}
	return fmt.Sprintf("%d-%02d-15", dueYear, dueMonth)
}

// ValidPeriod reports whether year/month form a plausible declaration
// period. Out-of-range periods are a structural failure at the boundary.
func ValidPeriod(year, month int) bool {
	return year >= 2000 && year <= 2100 && month >= 1 && month <= 12
}
