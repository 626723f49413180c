package services

import (
	"vetcare-api/internal/pkg/jwt"
)

// PasswordHasher is the slice of password.Hasher the services need
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
	BurnCompare(plaintext string) bool
}

// TokenIssuer signs session tokens
type TokenIssuer interface {
	Issue(userID uint, email, role string) (string, *jwt.Claims, error)
}
