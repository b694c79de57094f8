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

	"bazaar.backend/internal/domain/entities"
	domainerrors "bazaar.backend/internal/domain/errors"
	"bazaar.backend/internal/infrastructure/models"
	"bazaar.backend/pkg/utils"
)

// UserRepository implements user data operations on GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. Emails are stored lowercased so the unique index
// is case-insensitive. A duplicate email maps to ErrAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	m, err := userToModel(user)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m)
}

// GetByEmail gets a user by email, matching case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m)
}

// UpdateRoles replaces the role set in a single write.
func (r *UserRepository) UpdateRoles(ctx context.Context, id uuid.UUID, roles entities.RoleList) error {
	encoded, err := json.Marshal(roles)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"roles":      string(encoded),
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

// UpdateFavorites replaces the favorite-item list in a single write.
func (r *UserRepository) UpdateFavorites(ctx context.Context, id uuid.UUID, favorites []uuid.UUID) error {
	encoded, err := json.Marshal(favorites)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"favorite_items": string(encoded),
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users newest first with pagination.
func (r *UserRepository) List(ctx context.Context, p utils.PaginationParams) ([]*entities.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(p.CalculateOffset()).
		Limit(p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(rows))
	for i := range rows {
		u, err := userToEntity(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, nil
}

func userToModel(u *entities.User) (*models.User, error) {
	roles, err := json.Marshal(u.Roles)
	if err != nil {
		return nil, err
	}
	favorites, err := json.Marshal(u.FavoriteItems)
	if err != nil {
		return nil, err
	}

	m := &models.User{
		ID:            u.ID,
		Email:         strings.ToLower(u.Email),
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Phone:         u.Phone,
		PasswordHash:  u.PasswordHash,
		Roles:         string(roles),
		FavoriteItems: string(favorites),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if u.Address.Valid {
		m.Address = &u.Address.String
	}
	return m, nil
}

func userToEntity(m *models.User) (*entities.User, error) {
	var roles entities.RoleList
	if m.Roles != "" {
		if err := json.Unmarshal([]byte(m.Roles), &roles); err != nil {
			return nil, err
		}
	}
	var favorites []uuid.UUID
	if m.FavoriteItems != "" {
		if err := json.Unmarshal([]byte(m.FavoriteItems), &favorites); err != nil {
			return nil, err
		}
	}

	return &entities.User{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Address:       null.StringFromPtr(m.Address),
		Phone:         m.Phone,
		Email:         m.Email,
		PasswordHash:  m.PasswordHash,
		Roles:         roles,
		FavoriteItems: favorites,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// isUniqueViolation matches the unique-constraint error text of the drivers in
// use (postgres in production, sqlite in tests).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
