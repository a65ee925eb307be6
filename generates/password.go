package generates

import "golang.org/x/crypto/bcrypt"

// PasswordEncoder is a one-way hash with verification.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

// BcryptEncoder hashes passwords with bcrypt. A zero Cost means bcrypt.DefaultCost.
type BcryptEncoder struct {
	Cost int
}

func (e BcryptEncoder) Encode(raw string) (string, error) {
	cost := e.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (e BcryptEncoder) Matches(raw, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(raw)) == nil
}
