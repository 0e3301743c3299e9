// file: internals/helpers/token.go
package helper

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// Token verifikasi/reset: 32 byte random, url-safe, muat di link email.
// Session token: 64 byte: bearer credential berumur panjang, entropi lebih besar.
const (
	verificationTokenBytes = 32
	sessionTokenBytes      = 64
)

func randomURLToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand gagal hanya kalau OS entropy source rusak
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// GenerateToken membuat token opaque untuk verifikasi email / reset password.
func GenerateToken() string {
	return randomURLToken(verificationTokenBytes)
}

// GenerateSessionToken membuat session token opaque.
func GenerateSessionToken() string {
	return randomURLToken(sessionTokenBytes)
}

// GetExpiryTime mengembalikan timestamp absolut now + offset menit (UTC).
func GetExpiryTime(minutes int) time.Time {
	return time.Now().UTC().Add(time.Duration(minutes) * time.Minute)
}

// IsTokenExpired membandingkan expires_at dengan waktu sekarang.
func IsTokenExpired(expiresAt time.Time) bool {
	return time.Now().UTC().After(expiresAt)
}
