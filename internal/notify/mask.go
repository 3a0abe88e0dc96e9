package notify

import "strings"

// MaskEmail masks an email address for audit and log display: the first
// character of the local part survives, every other local character becomes
// an asterisk, and the domain is preserved, e.g.
// "john.doe@example.com" -> "j*******@example.com".
//
// A single-character local part is fully masked ("a@x.com" -> "*@x.com") so
// the masked form never round-trips to the original. Masking must never be
// applied to the address actually used for delivery.
func MaskEmail(email string) string {
	parts := strings.SplitN(email, "@", 2)
	if len(parts) != 2 {
		// Not an address shape; mask everything.
		return strings.Repeat("*", len(email))
	}

	local, domain := parts[0], parts[1]
	switch len(local) {
	case 0:
		// Nothing to mask; the value is already content-free.
		return email
	case 1:
		return "*@" + domain
	default:
		return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
	}
}
