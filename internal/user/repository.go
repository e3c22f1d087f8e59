package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// ErrEmailExists is returned by Create when the email unique constraint
// fires, which can happen even after a FindByEmail check under concurrent
// registrations.
var ErrEmailExists = errors.New("email already exists")

type Repository interface {
	Create(ctx context.Context, u *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
