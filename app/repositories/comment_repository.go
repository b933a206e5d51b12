package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/pkg/orm"
)

// CommentRepository stores lot and seller comments. Comments are append-only.
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) query(ctx context.Context) *orm.Query {
	return orm.New(r.db).WithContext(ctx)
}

func (r *CommentRepository) CreateLotComment(ctx context.Context, c *models.LotComment) error {
	return r.query(ctx).Create(c)
}

func (r *CommentRepository) CreateSellerComment(ctx context.Context, c *models.SellerComment) error {
	return r.query(ctx).Create(c)
}

// LotComments lists the comments on a lot, oldest first.
func (r *CommentRepository) LotComments(ctx context.Context, lotID uint) ([]models.LotComment, error) {
	comments := []models.LotComment{}
	err := r.query(ctx).Where("lot_id = ?", lotID).Order("comment_id").Get(&comments)
	return comments, err
}

// SellerComments lists the comments on the seller named sellerName.
func (r *CommentRepository) SellerComments(ctx context.Context, sellerName string) ([]models.SellerComment, error) {
	comments := []models.SellerComment{}
	err := r.query(ctx).
		Joins("JOIN users ON users.user_id = seller_comments.seller_id").
		Where("users.username = ?", sellerName).
		Order("seller_comments.comment_id").
		Get(&comments)
	return comments, err
}
