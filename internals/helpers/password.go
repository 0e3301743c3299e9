// file: internals/helpers/password.go
package helper

import "golang.org/x/crypto/bcrypt"

// Satu jalur hash untuk semua jenis principal (student, driver, admin, dst).

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
