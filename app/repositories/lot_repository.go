package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/pkg/orm"
)

// Listing is a displayed lot joined with its seller's username.
type Listing struct {
	models.FlowerLot
	SellerName string `gorm:"column:seller_name"`
}

// LotRepository handles database operations for FlowerLot.
type LotRepository struct {
	db *gorm.DB
}

func NewLotRepository(db *gorm.DB) *LotRepository {
	return &LotRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *LotRepository) WithTx(tx *gorm.DB) *LotRepository {
	return &LotRepository{db: tx}
}

func (r *LotRepository) query(ctx context.Context) *orm.Query {
	return orm.New(r.db).WithContext(ctx)
}

// Create persists a new lot.
func (r *LotRepository) Create(ctx context.Context, lot *models.FlowerLot) error {
	return r.query(ctx).Create(lot)
}

// Find loads a lot by id regardless of owner.
func (r *LotRepository) Find(ctx context.Context, lotID uint) (models.FlowerLot, error) {
	var lot models.FlowerLot
	err := r.query(ctx).Where("lot_id = ?", lotID).First(&lot)
	return lot, err
}

// FindOwned loads a lot only if sellerID owns it.
func (r *LotRepository) FindOwned(ctx context.Context, sellerID string, lotID uint) (models.FlowerLot, error) {
	var lot models.FlowerLot
	err := r.query(ctx).Where("lot_id = ? AND seller_id = ?", lotID, sellerID).First(&lot)
	return lot, err
}

// ListBySeller returns every lot of sellerID, displayed or not.
func (r *LotRepository) ListBySeller(ctx context.Context, sellerID string) ([]models.FlowerLot, error) {
	lots := []models.FlowerLot{}
	err := r.query(ctx).Where("seller_id = ?", sellerID).Order("lot_id").Get(&lots)
	return lots, err
}

// SetDisplayed updates the display flag of an owned lot. It reports false
// when no lot matches lotID and sellerID together.
func (r *LotRepository) SetDisplayed(ctx context.Context, sellerID string, lotID uint, displayed bool) (bool, error) {
	n, err := r.query(ctx).
		Model(&models.FlowerLot{}).
		Where("lot_id = ? AND seller_id = ?", lotID, sellerID).
		Update("is_displayed", displayed)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	// Some drivers report zero affected rows when the value is unchanged.
	return r.query(ctx).
		Model(&models.FlowerLot{}).
		Where("lot_id = ? AND seller_id = ?", lotID, sellerID).
		Exists()
}

// DeleteOwned removes an owned lot. Deleting a missing lot is not an error.
func (r *LotRepository) DeleteOwned(ctx context.Context, sellerID string, lotID uint) error {
	_, err := r.query(ctx).
		Where("lot_id = ? AND seller_id = ?", lotID, sellerID).
		Delete(&models.FlowerLot{})
	return err
}

// Decrement atomically takes quantity flowers from a lot. The check and the
// write are one statement, so two concurrent buyers cannot both pass the
// check against the same stock. Zero matched rows means the lot is gone or
// holds fewer than quantity flowers; both are reported as
// models.ErrInsufficientStock and the caller re-reads to tell them apart.
func (r *LotRepository) Decrement(ctx context.Context, lotID uint, quantity int) error {
	if quantity <= 0 {
		return models.ErrInvalidQuantity
	}
	n, err := r.query(ctx).
		Model(&models.FlowerLot{}).
		Where("lot_id = ? AND flowers_amount >= ?", lotID, quantity).
		UpdateColumn("flowers_amount", gorm.Expr("flowers_amount - ?", quantity))
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrInsufficientStock
	}
	// UpdateColumn skips hooks, so bump updated_at explicitly.
	_, err = r.query(ctx).
		Model(&models.FlowerLot{}).
		Where("lot_id = ?", lotID).
		UpdateColumn("updated_at", time.Now())
	return err
}

// ListDisplayed returns displayed lots of every seller, or of one seller when
// sellerName is not empty. A page below 1 returns everything.
func (r *LotRepository) ListDisplayed(ctx context.Context, sellerName string, page, limit int) ([]Listing, orm.Pagination, error) {
	q := r.query(ctx).
		Table("flower_lots").
		Select("flower_lots.*, users.username AS seller_name").
		Joins("JOIN users ON users.user_id = flower_lots.seller_id").
		Where("flower_lots.is_displayed = ?", true)
	if sellerName != "" {
		q = q.Where("users.username = ?", sellerName)
	}

	listings := []Listing{}
	p, err := q.Order("flower_lots.lot_id").Paginate(&listings, page, limit)
	return listings, p, err
}
