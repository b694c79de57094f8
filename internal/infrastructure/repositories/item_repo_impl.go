package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bazaar.backend/internal/domain/entities"
	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/infrastructure/models"
	"bazaar.backend/pkg/utils"
)

// ItemRepository implements listing data operations on GORM. The free-text
// search strategy is fixed at construction time (config-driven), not chosen by
// error recovery at runtime.
type ItemRepository struct {
	db         *gorm.DB
	searchMode string
}

// NewItemRepository creates a new item repository. searchMode is one of
// entities.SearchModeFullText or entities.SearchModeSubstring.
func NewItemRepository(db *gorm.DB, searchMode string) *ItemRepository {
	if searchMode != entities.SearchModeFullText {
		searchMode = entities.SearchModeSubstring
	}
	return &ItemRepository{db: db, searchMode: searchMode}
}

// Create creates a new listing.
func (r *ItemRepository) Create(ctx context.Context, item *entities.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	m, err := itemToModel(item)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a listing by ID
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Item, error) {
	var m models.Item
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return itemToEntity(&m)
}

// GetByIDs gets listings by ID, newest first. Missing ids are skipped.
func (r *ItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []models.Item
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return itemsToEntities(rows)
}

// Update writes the mutable listing fields. Moderation state and the view
// counter have their own write paths and are never touched here.
func (r *ItemRepository) Update(ctx context.Context, item *entities.Item) error {
	images, err := json.Marshal(item.Images)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"name":         item.Name,
		"price":        item.Price,
		"description":  item.Description,
		"images":       string(images),
		"category":     item.Category,
		"sub_category": item.SubCategory,
		"location":     item.Location.Ptr(),
		"condition":    item.Condition.Ptr(),
		"updated_at":   time.Now(),
	}

	result := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", item.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a listing.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus performs a moderation transition. is_approved is derived from
// the target status in the same write, so the pair cannot drift.
func (r *ItemRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ItemStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      string(status),
		"is_approved": status == entities.ItemStatusApproved,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkSold transitions APPROVED -> SOLD with a single conditional update.
func (r *ItemRepository) MarkSold(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&models.Item{}).
		Where("id = ? AND status = ?", id, string(entities.ItemStatusApproved)).
		Updates(map[string]interface{}{
			"status":     string(entities.ItemStatusSold),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Distinguish a missing item from one in the wrong state.
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domainerrors.ErrNotFound
	}
	return domainerrors.ErrInvalidState
}

// IncrementViews bumps the view counter with an atomic in-place update.
func (r *ItemRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// List applies the filter set, counts the matches, then fetches the requested
// page. The count and the page are separate queries; they may disagree under
// concurrent writes, which is acceptable here.
func (r *ItemRepository) List(ctx context.Context, filter entities.ItemFilter, p utils.PaginationParams) ([]*entities.Item, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Item{})
	base = r.applyFilter(base, filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{})
	if filter.Query != "" && r.searchMode == entities.SearchModeFullText {
		query = query.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "ts_rank(to_tsvector('english', name || ' ' || description), plainto_tsquery('english', ?)) DESC",
			Vars: []interface{}{filter.Query},
		}})
	} else {
		query = query.Order("created_at DESC")
	}

	var rows []models.Item
	err := query.
		Offset(p.CalculateOffset()).
		Limit(p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	items, err := itemsToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *ItemRepository) applyFilter(q *gorm.DB, filter entities.ItemFilter) *gorm.DB {
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SubCategory != "" {
		q = q.Where("sub_category = ?", filter.SubCategory)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Condition != "" {
		q = q.Where("condition = ?", filter.Condition)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.SellerID != uuid.Nil {
		q = q.Where("seller_id = ?", filter.SellerID)
	}
	if filter.ApprovedOnly {
		q = q.Where("status = ? AND is_approved = ?", string(entities.ItemStatusApproved), true)
	}
	if filter.Query != "" {
		if r.searchMode == entities.SearchModeFullText {
			q = q.Where("to_tsvector('english', name || ' ' || description) @@ plainto_tsquery('english', ?)", filter.Query)
		} else {
			needle := "%" + strings.ToLower(filter.Query) + "%"
			q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
		}
	}
	return q
}

// ListMissingEmbeddings returns items whose vector is absent or has the wrong
// length. The length check happens after decoding since the vector is stored
// as JSON text.
func (r *ItemRepository) ListMissingEmbeddings(ctx context.Context, dims int) ([]*entities.Item, error) {
	var rows []models.Item
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, err
	}

	items, err := itemsToEntities(rows)
	if err != nil {
		return nil, err
	}

	var missing []*entities.Item
	for _, it := range items {
		if len(it.Embedding) != dims {
			missing = append(missing, it)
		}
	}
	return missing, nil
}

// ListApprovedWithEmbeddings returns the AI-search candidate set.
func (r *ItemRepository) ListApprovedWithEmbeddings(ctx context.Context) ([]*entities.Item, error) {
	var rows []models.Item
	err := r.db.WithContext(ctx).
		Where("status = ? AND is_approved = ?", string(entities.ItemStatusApproved), true).
		Where("embedding IS NOT NULL AND embedding <> ''").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return itemsToEntities(rows)
}

// UpdateEmbedding stores a listing's vector.
func (r *ItemRepository) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	encoded, err := json.Marshal(embedding)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&models.Item{}).Where("id = ?", id).Updates(map[string]interface{}{
		"embedding":  string(encoded),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func itemToModel(it *entities.Item) (*models.Item, error) {
	images, err := json.Marshal(it.Images)
	if err != nil {
		return nil, err
	}

	m := &models.Item{
		ID:          it.ID,
		SellerID:    it.SellerID,
		Name:        it.Name,
		Price:       it.Price,
		Description: it.Description,
		Images:      string(images),
		Category:    it.Category,
		SubCategory: it.SubCategory,
		Location:    it.Location.Ptr(),
		Condition:   it.Condition.Ptr(),
		IsApproved:  it.IsApproved,
		Status:      string(it.Status),
		Views:       it.Views,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
	if len(it.Embedding) > 0 {
		encoded, err := json.Marshal(it.Embedding)
		if err != nil {
			return nil, err
		}
		m.Embedding = string(encoded)
	}
	return m, nil
}

func itemToEntity(m *models.Item) (*entities.Item, error) {
	var images []string
	if m.Images != "" {
		if err := json.Unmarshal([]byte(m.Images), &images); err != nil {
			return nil, err
		}
	}
	var embedding []float32
	if m.Embedding != "" {
		if err := json.Unmarshal([]byte(m.Embedding), &embedding); err != nil {
			return nil, err
		}
	}

	return &entities.Item{
		ID:          m.ID,
		SellerID:    m.SellerID,
		Name:        m.Name,
		Price:       m.Price,
		Description: m.Description,
		Images:      images,
		Category:    m.Category,
		SubCategory: m.SubCategory,
		Location:    null.StringFromPtr(m.Location),
		Condition:   null.StringFromPtr(m.Condition),
		IsApproved:  m.IsApproved,
		Status:      entities.ItemStatus(m.Status),
		Views:       m.Views,
		Embedding:   embedding,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

func itemsToEntities(rows []models.Item) ([]*entities.Item, error) {
	items := make([]*entities.Item, 0, len(rows))
	for i := range rows {
		it, err := itemToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}
