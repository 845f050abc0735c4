package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the stored credential hash for an admin password.
// bcrypt salts per record; cost comes from AUTH_BCRYPT_COST. The plaintext is
// not retained by the caller after this returns.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword checks a login attempt against the stored admin hash using
// bcrypt's constant-time comparison. A non-nil error means mismatch.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
