package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/app/repositories"
	"github.com/shashiranjanraj/flowershop/pkg/orm"
)

// Comment is the input of both comment flows.
type Comment struct {
	Text   string
	Rating *int
}

func (c Comment) validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return invalid("text", "The text field is required.")
	}
	if c.Rating != nil && (*c.Rating < 0 || *c.Rating > 5) {
		return invalid("rating", "The rating must be between 0 and 5.")
	}
	return nil
}

// CommentService appends and lists feedback on lots and sellers. Any
// authenticated user may comment.
type CommentService struct {
	comments *repositories.CommentRepository
	lots     *repositories.LotRepository
	users    *repositories.UserRepository
}

func NewCommentService(comments *repositories.CommentRepository, lots *repositories.LotRepository, users *repositories.UserRepository) *CommentService {
	return &CommentService{comments: comments, lots: lots, users: users}
}

// CommentLot attaches a comment to lotID.
func (s *CommentService) CommentLot(ctx context.Context, reviewerID string, lotID uint, in Comment) (models.LotComment, error) {
	if err := in.validate(); err != nil {
		return models.LotComment{}, err
	}
	if _, err := s.lots.Find(ctx, lotID); err != nil {
		if orm.IsNotFound(err) {
			return models.LotComment{}, ErrLotNotFound
		}
		return models.LotComment{}, err
	}

	c := models.LotComment{Text: in.Text, Rating: in.Rating, LotID: lotID, ReviewerID: reviewerID}
	if err := s.comments.CreateLotComment(ctx, &c); err != nil {
		return models.LotComment{}, err
	}
	return c, nil
}

// CommentSeller attaches a comment to the seller named sellerName.
func (s *CommentService) CommentSeller(ctx context.Context, reviewerID, sellerName string, in Comment) (models.SellerComment, error) {
	if err := in.validate(); err != nil {
		return models.SellerComment{}, err
	}
	seller, err := s.users.FindSeller(ctx, sellerName)
	if err != nil {
		if orm.IsNotFound(err) {
			return models.SellerComment{}, ErrSellerNotFound
		}
		return models.SellerComment{}, err
	}

	c := models.SellerComment{Text: in.Text, Rating: in.Rating, SellerID: seller.ID, ReviewerID: reviewerID}
	if err := s.comments.CreateSellerComment(ctx, &c); err != nil {
		return models.SellerComment{}, err
	}
	return c, nil
}

// LotComments lists comments on lotID; an unknown lot has none.
func (s *CommentService) LotComments(ctx context.Context, lotID uint) ([]models.LotComment, error) {
	return s.comments.LotComments(ctx, lotID)
}

// SellerComments lists comments on the seller named sellerName.
func (s *CommentService) SellerComments(ctx context.Context, sellerName string) ([]models.SellerComment, error) {
	return s.comments.SellerComments(ctx, sellerName)
}
