package ports

import (
	"context"

	"github.com/anantha-foods/ordering-system/internal/core/domain"
)

// SuggestionRepository persists the city approval queue entries.
type SuggestionRepository interface {
	Create(ctx context.Context, s *domain.CitySuggestion) error
	// FindPending matches case-insensitively on (city, state) among pending
	// suggestions, returning domain.ErrCityNotFound when none exists.
	FindPending(ctx context.Context, city, state string) (*domain.CitySuggestion, error)
	UpdateStatus(ctx context.Context, id string, status domain.SuggestionStatus) error
}
