package usecases

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"bazaar.backend/internal/domain/entities"
	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/domain/repositories"
	"bazaar.backend/pkg/logger"
)

// ImageUploader stores one listing image and returns its durable URL.
type ImageUploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

// ImageFile pairs an upload filename with its content.
type ImageFile struct {
	Name    string
	Content io.Reader
}

// ItemUsecase handles the listing lifecycle: creation, edits, moderation and
// the sale transition.
type ItemUsecase struct {
	itemRepo repositories.ItemRepository
	uploader ImageUploader
	catalog  *entities.Catalog
}

// NewItemUsecase creates a new item usecase
func NewItemUsecase(itemRepo repositories.ItemRepository, uploader ImageUploader, catalog *entities.Catalog) *ItemUsecase {
	return &ItemUsecase{
		itemRepo: itemRepo,
		uploader: uploader,
		catalog:  catalog,
	}
}

// Create validates and stores a new listing. Images are uploaded one at a
// time, preserving submission order; new listings always start PENDING.
func (u *ItemUsecase) Create(ctx context.Context, sellerID uuid.UUID, input *entities.CreateItemInput, images []ImageFile) (*entities.Item, error) {
	if err := u.validateInput(input.Category, input.SubCategory, input.Condition); err != nil {
		return nil, err
	}
	if len(images) < entities.MinItemImages || len(images) > entities.MaxItemImages {
		return nil, domainerrors.BadRequest(fmt.Sprintf("a listing needs between %d and %d images", entities.MinItemImages, entities.MaxItemImages))
	}

	urls, err := u.uploadAll(ctx, images)
	if err != nil {
		return nil, err
	}

	item := &entities.Item{
		SellerID:    sellerID,
		Name:        input.Name,
		Price:       input.Price,
		Description: input.Description,
		Images:      urls,
		Category:    input.Category,
		SubCategory: input.SubCategory,
		Location:    null.NewString(input.Location, input.Location != ""),
		Condition:   null.NewString(input.Condition, input.Condition != ""),
		Status:      entities.ItemStatusPending,
	}

	if err := u.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Edit updates a listing's mutable fields. ExistingImages selects which of the
// already-stored URLs survive; new uploads are appended after them. Moderation
// state is untouched, an APPROVED listing stays APPROVED through an edit.
func (u *ItemUsecase) Edit(ctx context.Context, actor Actor, itemID uuid.UUID, input *entities.EditItemInput, newImages []ImageFile) (*entities.Item, error) {
	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := actor.MayManage(item.SellerID); err != nil {
		return nil, err
	}
	if err := u.validateInput(input.Category, input.SubCategory, input.Condition); err != nil {
		return nil, err
	}

	// Kept URLs must come from the listing itself.
	stored := make(map[string]bool, len(item.Images))
	for _, url := range item.Images {
		stored[url] = true
	}
	kept := make([]string, 0, len(input.ExistingImages))
	for _, url := range input.ExistingImages {
		if !stored[url] {
			return nil, domainerrors.BadRequest("existingImages contains an unknown image url")
		}
		kept = append(kept, url)
	}

	total := len(kept) + len(newImages)
	if total < entities.MinItemImages || total > entities.MaxItemImages {
		return nil, domainerrors.BadRequest(fmt.Sprintf("a listing needs between %d and %d images", entities.MinItemImages, entities.MaxItemImages))
	}

	urls, err := u.uploadAll(ctx, newImages)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Price = input.Price
	item.Description = input.Description
	item.Category = input.Category
	item.SubCategory = input.SubCategory
	item.Location = null.NewString(input.Location, input.Location != "")
	item.Condition = null.NewString(input.Condition, input.Condition != "")
	item.Images = append(kept, urls...)

	if err := u.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a listing. Sellers may delete their own listings in any
// state; this is also the remediation path for a REJECTED listing.
func (u *ItemUsecase) Delete(ctx context.Context, actor Actor, itemID uuid.UUID) error {
	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := actor.MayManage(item.SellerID); err != nil {
		return err
	}
	return u.itemRepo.Delete(ctx, itemID)
}

// Get returns a listing and bumps its view counter. The bump is fire and
// forget: a failed increment never fails the read.
func (u *ItemUsecase) Get(ctx context.Context, itemID uuid.UUID) (*entities.Item, error) {
	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := u.itemRepo.IncrementViews(ctx, itemID); err != nil {
		logger.Warn(ctx, "view counter increment failed",
			zap.String("item_id", itemID.String()), zap.Error(err))
	} else {
		item.Views++
	}
	return item, nil
}

// Approve moves a PENDING listing into the public catalog.
func (u *ItemUsecase) Approve(ctx context.Context, itemID uuid.UUID) (*entities.Item, error) {
	return u.moderate(ctx, itemID, entities.ItemStatusApproved)
}

// Reject declines a PENDING listing. REJECTED is terminal; the seller's
// remediation path is delete and resubmit.
func (u *ItemUsecase) Reject(ctx context.Context, itemID uuid.UUID) (*entities.Item, error) {
	return u.moderate(ctx, itemID, entities.ItemStatusRejected)
}

func (u *ItemUsecase) moderate(ctx context.Context, itemID uuid.UUID, status entities.ItemStatus) (*entities.Item, error) {
	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Status != entities.ItemStatusPending {
		return nil, domainerrors.InvalidState(fmt.Sprintf("listing is %s, only PENDING listings can be moderated", item.Status))
	}

	if err := u.itemRepo.UpdateStatus(ctx, itemID, status); err != nil {
		return nil, err
	}
	item.Status = status
	item.IsApproved = status == entities.ItemStatusApproved
	return item, nil
}

// MarkSold transitions the caller's APPROVED listing to SOLD.
func (u *ItemUsecase) MarkSold(ctx context.Context, actor Actor, itemID uuid.UUID) error {
	item, err := u.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := actor.MayManage(item.SellerID); err != nil {
		return err
	}
	return u.itemRepo.MarkSold(ctx, itemID)
}

func (u *ItemUsecase) validateInput(category, subCategory, condition string) error {
	if !u.catalog.IsValid(category, subCategory) {
		return domainerrors.BadRequest("unknown category/sub-category pair")
	}
	if condition != "" && !entities.IsValidCondition(condition) {
		return domainerrors.BadRequest("unknown condition")
	}
	return nil
}

func (u *ItemUsecase) uploadAll(ctx context.Context, images []ImageFile) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := u.uploader.Upload(ctx, img.Name, img.Content)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
