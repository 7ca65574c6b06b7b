package auth

import "icatdirect/internal/domain/models"

// JWTVerifier verifies bearer tokens and yields the claims naming the
// iRODS user a request runs as.
type JWTVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns domain.ErrUnauthorized if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.IcatClaims, error)

	// Close releases any resources held by the verifier
	Close() error
}
