package usecases

import (
	"context"

	"github.com/google/uuid"

	"bazaar.backend/internal/domain/entities"
	"bazaar.backend/internal/domain/repositories"
)

// FavoriteUsecase manages a user's favorite-listing set. The set lives on the
// user record; updates are read-modify-write.
type FavoriteUsecase struct {
	userRepo repositories.UserRepository
	itemRepo repositories.ItemRepository
}

// NewFavoriteUsecase creates a new favorite usecase
func NewFavoriteUsecase(userRepo repositories.UserRepository, itemRepo repositories.ItemRepository) *FavoriteUsecase {
	return &FavoriteUsecase{
		userRepo: userRepo,
		itemRepo: itemRepo,
	}
}

// Add puts a listing in the user's favorites. Favoriting the same listing
// twice is a no-op; the set never holds duplicates.
func (u *FavoriteUsecase) Add(ctx context.Context, userID, itemID uuid.UUID) error {
	// The listing must exist, any state is fine.
	if _, err := u.itemRepo.GetByID(ctx, itemID); err != nil {
		return err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	for _, id := range user.FavoriteItems {
		if id == itemID {
			return nil
		}
	}
	return u.userRepo.UpdateFavorites(ctx, userID, append(user.FavoriteItems, itemID))
}

// Remove drops a listing from the user's favorites. Removing an absent entry
// is a no-op.
func (u *FavoriteUsecase) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	kept := make([]uuid.UUID, 0, len(user.FavoriteItems))
	for _, id := range user.FavoriteItems {
		if id != itemID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(user.FavoriteItems) {
		return nil
	}
	return u.userRepo.UpdateFavorites(ctx, userID, kept)
}

// List resolves the user's favorites into listings. Favorites pointing at
// deleted listings are silently skipped.
func (u *FavoriteUsecase) List(ctx context.Context, userID uuid.UUID) ([]*entities.Item, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.FavoriteItems) == 0 {
		return nil, nil
	}
	return u.itemRepo.GetByIDs(ctx, user.FavoriteItems)
}
