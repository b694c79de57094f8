package usecases

import (
	"context"

	"github.com/google/uuid"

	"bazaar.backend/internal/domain/entities"
	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/domain/repositories"
	"bazaar.backend/pkg/utils"
)

// CatalogUsecase serves the read side of the catalog: public browsing, seller
// dashboards and the category table.
type CatalogUsecase struct {
	itemRepo repositories.ItemRepository
	catalog  *entities.Catalog
}

// NewCatalogUsecase creates a new catalog usecase
func NewCatalogUsecase(itemRepo repositories.ItemRepository, catalog *entities.Catalog) *CatalogUsecase {
	return &CatalogUsecase{
		itemRepo: itemRepo,
		catalog:  catalog,
	}
}

// Browse runs a public catalog query. ApprovedOnly is forced after the
// caller's filters are taken, so no filter combination can surface an
// unapproved listing.
func (u *CatalogUsecase) Browse(ctx context.Context, filter entities.ItemFilter, p utils.PaginationParams) ([]*entities.Item, int64, error) {
	filter.ApprovedOnly = true
	filter.Status = ""
	return u.itemRepo.List(ctx, filter, p)
}

// ByCategory is a public category/sub-category browse.
func (u *CatalogUsecase) ByCategory(ctx context.Context, category, subCategory string, p utils.PaginationParams) ([]*entities.Item, int64, error) {
	if !u.catalog.HasCategory(category) {
		return nil, 0, domainerrors.NotFound("unknown category")
	}
	if subCategory != "" && !u.catalog.IsValid(category, subCategory) {
		return nil, 0, domainerrors.NotFound("unknown sub-category")
	}

	return u.Browse(ctx, entities.ItemFilter{
		Category:    category,
		SubCategory: subCategory,
	}, p)
}

// MyItems lists the seller's own listings in every state.
func (u *CatalogUsecase) MyItems(ctx context.Context, sellerID uuid.UUID, p utils.PaginationParams) ([]*entities.Item, int64, error) {
	return u.itemRepo.List(ctx, entities.ItemFilter{SellerID: sellerID}, p)
}

// Categories returns the full category table.
func (u *CatalogUsecase) Categories() map[string][]string {
	return u.catalog.AsMap()
}
