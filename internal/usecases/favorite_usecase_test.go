package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bazaar.backend/internal/domain/entities"
	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/usecases"
)

func TestFavoriteUsecase_Add(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	existing := uuid.New()

	t.Run("appends to the set", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		uc := usecases.NewFavoriteUsecase(userRepo, itemRepo)

		itemRepo.On("GetByID", context.Background(), itemID).Return(&entities.Item{ID: itemID}, nil).Once()
		userRepo.On("GetByID", context.Background(), userID).
			Return(&entities.User{ID: userID, FavoriteItems: []uuid.UUID{existing}}, nil).Once()
		userRepo.On("UpdateFavorites", context.Background(), userID, []uuid.UUID{existing, itemID}).Return(nil).Once()

		assert.NoError(t, uc.Add(context.Background(), userID, itemID))
		userRepo.AssertExpectations(t)
	})

	t.Run("duplicate is a no-op", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		uc := usecases.NewFavoriteUsecase(userRepo, itemRepo)

		itemRepo.On("GetByID", context.Background(), itemID).Return(&entities.Item{ID: itemID}, nil).Once()
		userRepo.On("GetByID", context.Background(), userID).
			Return(&entities.User{ID: userID, FavoriteItems: []uuid.UUID{itemID}}, nil).Once()

		assert.NoError(t, uc.Add(context.Background(), userID, itemID))
		userRepo.AssertNotCalled(t, "UpdateFavorites", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing listing", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		uc := usecases.NewFavoriteUsecase(userRepo, itemRepo)

		itemRepo.On("GetByID", context.Background(), itemID).Return(nil, domainerrors.ErrNotFound).Once()

		assert.ErrorIs(t, uc.Add(context.Background(), userID, itemID), domainerrors.ErrNotFound)
	})
}

func TestFavoriteUsecase_Remove(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	other := uuid.New()

	t.Run("drops the entry", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := usecases.NewFavoriteUsecase(userRepo, new(MockItemRepository))

		userRepo.On("GetByID", context.Background(), userID).
			Return(&entities.User{ID: userID, FavoriteItems: []uuid.UUID{other, itemID}}, nil).Once()
		userRepo.On("UpdateFavorites", context.Background(), userID, []uuid.UUID{other}).Return(nil).Once()

		assert.NoError(t, uc.Remove(context.Background(), userID, itemID))
		userRepo.AssertExpectations(t)
	})

	t.Run("absent entry is a no-op", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		uc := usecases.NewFavoriteUsecase(userRepo, new(MockItemRepository))

		userRepo.On("GetByID", context.Background(), userID).
			Return(&entities.User{ID: userID, FavoriteItems: []uuid.UUID{other}}, nil).Once()

		assert.NoError(t, uc.Remove(context.Background(), userID, itemID))
		userRepo.AssertNotCalled(t, "UpdateFavorites", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestFavoriteUsecase_List(t *testing.T) {
	userID := uuid.New()

	t.Run("resolves favorites", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		uc := usecases.NewFavoriteUsecase(userRepo, itemRepo)

		favs := []uuid.UUID{uuid.New(), uuid.New()}
		userRepo.On("GetByID", context.Background(), userID).
			Return(&entities.User{ID: userID, FavoriteItems: favs}, nil).Once()
		// one favorite points at a deleted listing
		itemRepo.On("GetByIDs", context.Background(), favs).
			Return([]*entities.Item{{ID: favs[0]}}, nil).Once()

		items, err := uc.List(context.Background(), userID)
		assert.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("empty set skips the item lookup", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		itemRepo := new(MockItemRepository)
		uc := usecases.NewFavoriteUsecase(userRepo, itemRepo)

		userRepo.On("GetByID", context.Background(), userID).
			Return(&entities.User{ID: userID}, nil).Once()

		items, err := uc.List(context.Background(), userID)
		assert.NoError(t, err)
		assert.Empty(t, items)
		itemRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
	})
}
