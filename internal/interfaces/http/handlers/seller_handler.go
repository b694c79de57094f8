package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/interfaces/http/response"
	"bazaar.backend/internal/usecases"
	"bazaar.backend/pkg/utils"
)

// SellerHandler handles the seller dashboard endpoints
type SellerHandler struct {
	catalogUsecase  *usecases.CatalogUsecase
	favoriteUsecase *usecases.FavoriteUsecase
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(catalogUsecase *usecases.CatalogUsecase, favoriteUsecase *usecases.FavoriteUsecase) *SellerHandler {
	return &SellerHandler{
		catalogUsecase:  catalogUsecase,
		favoriteUsecase: favoriteUsecase,
	}
}

// MyItems lists the caller's listings in every state
// GET /api/v1/seller/my-items
func (h *SellerHandler) MyItems(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	p := paginationFromQuery(c)
	items, total, err := h.catalogUsecase.MyItems(c.Request.Context(), actor.ID, p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "success", items, utils.CalculateMeta(total, p.Page, p.Limit))
}

// Favorites lists the caller's favorite listings
// GET /api/v1/seller/favorite-items
func (h *SellerHandler) Favorites(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	items, err := h.favoriteUsecase.List(c.Request.Context(), actor.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "success", items)
}

// AddFavorite puts a listing in the caller's favorites
// POST /api/v1/seller/favorite-item/:itemId
func (h *SellerHandler) AddFavorite(c *gin.Context) {
	h.updateFavorite(c, h.favoriteUsecase.Add, "Item added to favorites")
}

// RemoveFavorite drops a listing from the caller's favorites
// DELETE /api/v1/seller/favorite-item/:itemId
func (h *SellerHandler) RemoveFavorite(c *gin.Context) {
	h.updateFavorite(c, h.favoriteUsecase.Remove, "Item removed from favorites")
}

func (h *SellerHandler) updateFavorite(c *gin.Context, op func(ctx context.Context, userID, itemID uuid.UUID) error, message string) {
	actor, ok := actorFromContext(c)
	if !ok {
		response.Error(c, domainerrors.ErrUnauthorized)
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item id"))
		return
	}

	if err := op(c.Request.Context(), actor.ID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, message, nil)
}
