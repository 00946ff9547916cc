package customer

// NormalizePhone strips everything but digits. "010-1234-5678" and
// "010 1234 5678" key the same profile.
func NormalizePhone(phone string) string {
	var digits []byte
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	return string(digits)
}

// MinLookupDigits is the normalized-phone length that triggers a profile
// lookup in the booking flow.
const MinLookupDigits = 10
