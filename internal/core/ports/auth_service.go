package ports

import (
	"context"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email, phone, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
