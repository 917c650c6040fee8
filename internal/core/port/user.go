package port

import (
	"context"

	"accounts/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	DeleteByEmail(ctx context.Context, email string) (domain.User, error)
}

type UserService interface {
	Create(ctx context.Context, input domain.CreateUser) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	DeleteByEmail(ctx context.Context, email string) (string, error)
}
