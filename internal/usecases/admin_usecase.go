package usecases

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bazaar.backend/internal/domain/entities"
	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/domain/repositories"
	"bazaar.backend/pkg/logger"
	"bazaar.backend/pkg/utils"
)

// AdminUsecase serves the admin surface: account listings, the unfiltered item
// view and role grants.
type AdminUsecase struct {
	userRepo repositories.UserRepository
	itemRepo repositories.ItemRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(userRepo repositories.UserRepository, itemRepo repositories.ItemRepository) *AdminUsecase {
	return &AdminUsecase{
		userRepo: userRepo,
		itemRepo: itemRepo,
	}
}

// ListUsers pages through every account.
func (u *AdminUsecase) ListUsers(ctx context.Context, p utils.PaginationParams) ([]*entities.User, int64, error) {
	return u.userRepo.List(ctx, p)
}

// ListItems pages through listings in every state, optionally filtered.
func (u *AdminUsecase) ListItems(ctx context.Context, filter entities.ItemFilter, p utils.PaginationParams) ([]*entities.Item, int64, error) {
	return u.itemRepo.List(ctx, filter, p)
}

// MakeAdmin grants the ADMIN role. Granting to an existing admin is a no-op.
func (u *AdminUsecase) MakeAdmin(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Roles.Has(entities.RoleAdmin) {
		return user, nil
	}

	user.Roles = user.Roles.Add(entities.RoleAdmin)
	if err := u.userRepo.UpdateRoles(ctx, userID, user.Roles); err != nil {
		return nil, err
	}
	logger.Info(ctx, "admin role granted", zap.String("user_id", userID.String()))
	return user, nil
}

// RemoveAdmin revokes the ADMIN role. Super admins cannot be demoted.
func (u *AdminUsecase) RemoveAdmin(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Roles.Has(entities.RoleSuperAdmin) {
		return nil, domainerrors.Forbidden("super admin roles cannot be revoked")
	}
	if !user.Roles.Has(entities.RoleAdmin) {
		return user, nil
	}

	user.Roles = user.Roles.Remove(entities.RoleAdmin)
	if err := u.userRepo.UpdateRoles(ctx, userID, user.Roles); err != nil {
		return nil, err
	}
	logger.Info(ctx, "admin role revoked", zap.String("user_id", userID.String()))
	return user, nil
}
