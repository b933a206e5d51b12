package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const passwordSpecials = `#?!_|(){}@$%^&*[]-`

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// StrongPassword reports whether plain is 8 to 20 characters long and has an
// upper-case letter, a lower-case letter, a digit and one of #?!_|(){}@$%^&*[]-.
func StrongPassword(plain string) bool {
	n := len([]rune(plain))
	if n < 8 || n > 20 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}
