package auth

import "time"

// Strategy issues and verifies bearer credentials carrying the account id.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tune token issuance.
type Options struct {
	TTL time.Duration
}
