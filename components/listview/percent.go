package listview

// PercentageOf returns count as a percentage of total, or 0 when total is 0.
func PercentageOf(count, total float64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * count / total
}

// PercentageChange returns the relative change from previous to current in
// percent. A zero previous value yields 0 rather than an infinite change.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return 100 * (current - previous) / previous
}
