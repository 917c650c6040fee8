package util

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used when no cost is configured.
const DefaultCost = bcrypt.DefaultCost

// GenerateEncrypt hashes a plaintext password with bcrypt at the given
// cost. A cost of zero falls back to DefaultCost.
func GenerateEncrypt(password string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}

	encrypted, err := bcrypt.GenerateFromPassword([]byte(password), cost)

	if err != nil {
		return "", err
	}

	return string(encrypted), nil
}

// ComparePassword checks a plaintext password against a stored bcrypt
// digest. Verification re-runs the hash; nothing is ever decrypted.
func ComparePassword(password, encrypted string) error {
	return bcrypt.CompareHashAndPassword([]byte(encrypted), []byte(password))
}
