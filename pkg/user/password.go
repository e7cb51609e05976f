package user

// IsAcceptablePassword reports whether a plaintext password satisfies the
// sign-up policy: 8-12 characters, ASCII letters and digits only, at least
// one lowercase letter, exactly one uppercase letter and at least two digits.
// The uppercase rule really is "exactly one", not "at least one".
//
// The policy is checked character by character instead of with a regexp:
// Go's RE2 engine has no lookaheads, so the counting rules cannot be
// expressed as a single pattern.
func IsAcceptablePassword(password string) bool {
	if len(password) < 8 || len(password) > 12 {
		return false
	}

	var lower, upper, digits int
	for i := 0; i < len(password); i++ {
		c := password[i]
		switch {
		case c >= 'a' && c <= 'z':
			lower++
		case c >= 'A' && c <= 'Z':
			upper++
		case c >= '0' && c <= '9':
			digits++
		default:
			return false
		}
	}

	return lower >= 1 && upper == 1 && digits >= 2
}
