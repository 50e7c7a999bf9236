package types

// User is an account identity. The stored credential is a one-way hex
// digest of the password; the password itself is never persisted.
type User struct {
	Username     string
	PasswordHash string
}
