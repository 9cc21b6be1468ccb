package services

import "strings"

// SplitCredentials splits "<identifier> <secret>" at the first space. The
// secret is the rest of the line, so it may itself contain spaces.
func SplitCredentials(s string) (identifier, secret string, ok bool) {
	identifier, secret, ok = strings.Cut(strings.TrimSpace(s), " ")
	secret = strings.TrimLeft(secret, " ")
	if !ok || identifier == "" || secret == "" {
		return "", "", false
	}
	return identifier, secret, true
}
