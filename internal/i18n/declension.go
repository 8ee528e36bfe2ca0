package i18n

// Decline picks the Polish plural form of a noun for count n:
// one for 1, few for 2-4 (except 12-14, also 22-24, 32-34, ...), many otherwise.
func Decline(n int, one, few, many string) string {
	if n < 0 {
		n = -n
	}
	if n == 1 {
		return one
	}
	if r := n % 10; r >= 2 && r <= 4 {
		if t := n % 100; t < 12 || t > 14 {
			return few
		}
	}
	return many
}

// Days returns "dzień" or "dni" for n.
func Days(n int) string {
	if n == 1 || n == -1 {
		return "dzień"
	}
	return "dni"
}
