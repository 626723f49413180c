package password

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinCost is the lowest bcrypt work factor the hasher accepts
	MinCost = 10

	// DefaultCost is used when no cost is configured
	DefaultCost = MinCost

	// MaxLength is bcrypt's input limit in bytes, not characters
	MaxLength = 72
)

var (
	// ErrEmptyPassword is returned when hashing an empty plaintext
	ErrEmptyPassword = errors.New("password is empty")
	// ErrPasswordTooLong is returned when the plaintext exceeds MaxLength bytes
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// Hasher hashes and verifies passwords with bcrypt
type Hasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewHasher creates a hasher, raising cost to MinCost when it is lower
func NewHasher(cost int) *Hasher {
	if cost < MinCost {
		cost = MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Hash hashes a password using bcrypt
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	if len(plaintext) > MaxLength {
		return "", ErrPasswordTooLong
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash
func (h *Hasher) Verify(plaintext, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	return err == nil
}

// BurnCompare runs one comparison at the hasher's cost against a throwaway
// digest and always reports false. Used when the account does not exist so
// unknown emails take as long as wrong passwords.
func (h *Hasher) BurnCompare(plaintext string) bool {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("vetcare-dummy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plaintext))
	return false
}
