package repositories

import (
	"context"

	"bazaar.backend/internal/domain/entities"
	"bazaar.backend/pkg/utils"
	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	// UpdateRoles replaces the role set in a single atomic write.
	UpdateRoles(ctx context.Context, id uuid.UUID, roles entities.RoleList) error
	// UpdateFavorites replaces the favorite-item list. Callers do a
	// read-modify-write; concurrent updates from the same user may lose one
	// of the writes, which is acceptable for favorites.
	UpdateFavorites(ctx context.Context, id uuid.UUID, favorites []uuid.UUID) error
	List(ctx context.Context, p utils.PaginationParams) ([]*entities.User, int64, error)
}
