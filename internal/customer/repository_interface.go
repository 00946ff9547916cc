package customer

import "context"

type Repository interface {
	// FindByPhone looks up a profile by normalized phone. Returns nil, nil
	// when no profile exists; a miss is not an error.
	FindByPhone(ctx context.Context, phone string) (*Profile, error)
}
