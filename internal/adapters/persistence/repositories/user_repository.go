package repositories

import (
	"context"

	"vetcare-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user. A taken email is reported as
// gorm.ErrDuplicatedKey whatever the driver.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil && isDuplicateKey(err) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

// GetByID gets a user by ID
func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailOrName returns the first user matching either identifier.
// Empty identifiers are ignored; with both empty nothing matches.
func (r *userRepository) FindByEmailOrName(ctx context.Context, email, name string) (*models.User, error) {
	if email == "" && name == "" {
		return nil, gorm.ErrRecordNotFound
	}

	q := r.db.WithContext(ctx)
	switch {
	case email != "" && name != "":
		q = q.Where("email = ? OR name = ?", email, name)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		q = q.Where("name = ?", name)
	}

	var user models.User
	if err := q.Order("id").First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword replaces the stored hash
func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	return affected(res)
}

// ExistsByEmail checks if email exists
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// CountByRole returns the number of users per role
func (r *userRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Role  string
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("role, COUNT(*) AS total").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Total
	}
	return counts, nil
}

// List lists users with pagination, optionally filtered by role
func (r *userRepository) List(ctx context.Context, role string, offset, limit int) ([]*models.User, int64, error) {
	users := []*models.User{}
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if role != "" {
			return db.Where("role = ?", role)
		}
		return db
	}

	// Count total
	if err := r.db.WithContext(ctx).Model(&models.User{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get users with pagination
	err := r.db.WithContext(ctx).Scopes(scope).Order("id").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
