package models

import "github.com/golang-jwt/jwt/v5"

// IcatClaims represents the JWT claims issued by the identity provider
// fronting the catalog.
type IcatClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	PreferredUsername    string `json:"preferred_username"`
	Email                string `json:"email"`
}

// GetUsername returns the iRODS user name for the token.
// preferred_username wins over the subject claim.
func (c *IcatClaims) GetUsername() string {
	if c.PreferredUsername != "" {
		return c.PreferredUsername
	}
	return c.Subject
}
