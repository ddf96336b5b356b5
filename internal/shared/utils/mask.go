package utils

// MaskPhone keeps only the last three digits of a phone number for logs.
// Example: "0901234567" -> "*******567"
func MaskPhone(phone string) string {
	if len(phone) <= 3 {
		return "***"
	}
	masked := make([]byte, len(phone))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(phone)-3:], phone[len(phone)-3:])
	return string(masked)
}

// HashPrefix returns the first n characters of a hex digest so audit records
// can correlate actions without storing the full hash.
func HashPrefix(hash string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(hash) <= n {
		return hash
	}
	return hash[:n]
}
