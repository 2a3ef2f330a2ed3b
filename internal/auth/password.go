// Package auth holds the credential hashing and token signing core.
// Both are pure over their inputs: no persistence, no shared mutable
// state beyond the configuration captured at construction.
package auth

import "golang.org/x/crypto/bcrypt"

type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash produces a bcrypt digest with a fresh random salt. The output
// is self-describing (algorithm, cost and salt are embedded), so no
// other component ever needs to interpret it.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Check reports whether password matches the stored hash. Malformed or
// foreign-format hashes fail verification the same way a wrong password
// does; callers cannot tell the cases apart.
func (h *PasswordHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
