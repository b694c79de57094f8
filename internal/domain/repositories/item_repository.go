package repositories

import (
	"context"

	"bazaar.backend/internal/domain/entities"
	"bazaar.backend/pkg/utils"
	"github.com/google/uuid"
)

// ItemRepository defines listing data operations. Status and isApproved are
// only writable through UpdateStatus and MarkSold, which keep the pair in sync.
type ItemRepository interface {
	Create(ctx context.Context, item *entities.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Item, error)
	// Update writes the mutable listing fields; it never touches
	// status/is_approved/views.
	Update(ctx context.Context, item *entities.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	// UpdateStatus performs a moderation transition; is_approved is derived
	// from the target status inside the same write.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ItemStatus) error
	// MarkSold transitions APPROVED -> SOLD with a single conditional update.
	// Returns ErrInvalidState when the item exists but is not APPROVED.
	MarkSold(ctx context.Context, id uuid.UUID) error
	// IncrementViews bumps the view counter atomically; lost increments under
	// concurrent reads are acceptable.
	IncrementViews(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter entities.ItemFilter, p utils.PaginationParams) ([]*entities.Item, int64, error)
	// ListMissingEmbeddings returns approved-or-not items whose stored vector
	// is absent or not of the expected length.
	ListMissingEmbeddings(ctx context.Context, dims int) ([]*entities.Item, error)
	// ListApprovedWithEmbeddings returns the AI-search candidate set.
	ListApprovedWithEmbeddings(ctx context.Context) ([]*entities.Item, error)
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
}
