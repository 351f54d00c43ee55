package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a bcrypt hash of a random value. Login compares against it
// when the identifier is unknown so lookup misses and secret mismatches take
// comparable time.
const dummyHash = "$2a$12$4BVVHq4SnVM0T1uY50jAVOXT0eCcbYsYHHqeQqI9BeTIharYtwEpW"

// HashPassword hashes a plaintext password with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value in
// constant time.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// CompareDummy burns a bcrypt comparison for unknown identifiers.
func CompareDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
}
