package helpers

import "golang.org/x/crypto/bcrypt"

// HashSecret bcrypt-hashes a secret before it is persisted. Refresh tokens
// are stored in the session this way, so a leaked session dump cannot be
// replayed as-is.
func HashSecret(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckSecret compares a stored bcrypt hash with a presented secret.
func CheckSecret(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
