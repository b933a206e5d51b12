package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/pkg/auth"
	"github.com/shashiranjanraj/flowershop/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

func (r *UserRepository) query(ctx context.Context) *orm.Query {
	return orm.New(r.db).WithContext(ctx)
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.query(ctx).Create(user)
}

// Collisions names the unique fields ("username", "email") already taken by
// another user, in that order.
func (r *UserRepository) Collisions(ctx context.Context, username, email string) ([]string, error) {
	var taken []string

	exists, err := r.query(ctx).Model(&models.User{}).Where("username = ?", username).Exists()
	if err != nil {
		return nil, err
	}
	if exists {
		taken = append(taken, "username")
	}

	exists, err = r.query(ctx).Model(&models.User{}).Where("email = ?", email).Exists()
	if err != nil {
		return nil, err
	}
	if exists {
		taken = append(taken, "email")
	}

	return taken, nil
}

// FindByUsername looks up a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.query(ctx).Where("username = ?", username).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	err := r.query(ctx).Where("user_id = ?", id).First(&user)
	return user, err
}

// FindSeller looks up a seller by username.
func (r *UserRepository) FindSeller(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.query(ctx).
		Where("username = ? AND user_role = ?", username, auth.RoleSeller).
		First(&user)
	return user, err
}

// Principal implements auth.Directory.
func (r *UserRepository) Principal(ctx context.Context, id string) (auth.Principal, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		if orm.IsNotFound(err) {
			return auth.Principal{}, auth.ErrPrincipalNotFound
		}
		return auth.Principal{}, err
	}
	return user.Principal(), nil
}
