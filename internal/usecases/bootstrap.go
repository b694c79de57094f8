package usecases

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"bazaar.backend/internal/domain/entities"
	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/domain/repositories"
	"bazaar.backend/pkg/crypto"
	"bazaar.backend/pkg/logger"
)

// EnsureSuperAdmin creates the configured super-admin account if it does not
// exist yet. Idempotent: an existing account is left untouched, including its
// password. A concurrent create by another instance is treated as success.
func EnsureSuperAdmin(ctx context.Context, userRepo repositories.UserRepository, email, password string) error {
	if email == "" || password == "" {
		return domainerrors.BadRequest("super admin email and password must be configured")
	}

	_, err := userRepo.GetByEmail(ctx, email)
	if err == nil {
		logger.Debug(ctx, "super admin already exists")
		return nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &entities.User{
		FirstName:    "Super",
		LastName:     "Admin",
		Phone:        "0000000000",
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Roles:        entities.RoleList{entities.RoleSuperAdmin, entities.RoleAdmin},
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil
		}
		return err
	}

	logger.Info(ctx, "super admin created", zap.String("email", admin.Email))
	return nil
}
