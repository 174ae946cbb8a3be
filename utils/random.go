package utils

import "crypto/rand"

// Ambiguous characters (0/O, 1/I/L) are left out since users retype
// these codes from an email.
const codeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// RandomCode returns a short uppercase code suitable for password
// reset flows.
func RandomCode(length int) string {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand failure means the platform is broken
	}
	for i := range b {
		b[i] = codeCharset[int(b[i])%len(codeCharset)]
	}
	return string(b)
}
