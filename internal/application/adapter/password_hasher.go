package adapter

// PasswordHasher hashes accepted passwords before they are handed to the
// identity backend, and verifies candidates against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) error
}
