package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks a username/password pair. The HTTP layer only
// sees this interface, so the credential source can change without touching
// the middleware.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// EnvCredentials verifies against a single configured account. The password
// is bcrypt-hashed at construction so the plaintext is not kept around.
type EnvCredentials struct {
	username string
	hash     []byte
}

func NewEnvCredentials(username, password string) (*EnvCredentials, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &EnvCredentials{username: username, hash: hash}, nil
}

func (c *EnvCredentials) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.hash, []byte(password)) == nil
	return userOK && passOK
}
