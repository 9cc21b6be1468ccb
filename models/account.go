package models

// Account is a stored (identifier, secret) pair. Identifier is the
// customer's email.
type Account struct {
	Identifier string
	Secret     string
}
