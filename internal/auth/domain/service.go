package domain

import "context"

type Service interface {
	// Authenticate verifies an HS256 bearer token whose subject is a user id
	// and loads that user.
	Authenticate(ctx context.Context, rawToken string) (*User, error)
}
