package auth

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const realm = "Family Access"

// BasicAuth protects the site behind the family credential.
func BasicAuth(verifier CredentialVerifier) echo.MiddlewareFunc {
	return echomw.BasicAuthWithConfig(echomw.BasicAuthConfig{
		Realm: realm,
		Validator: func(username, password string, c echo.Context) (bool, error) {
			return verifier.Verify(username, password), nil
		},
	})
}
