package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/app/repositories"
	"github.com/shashiranjanraj/flowershop/pkg/logger"
	"github.com/shashiranjanraj/flowershop/pkg/orm"
)

// NewLot is the input of LotService.Create.
type NewLot struct {
	FlowerName    string
	FlowerColor   string
	IsDisplayed   *bool // nil means displayed
	FlowersAmount int
	PriceForOne   decimal.Decimal
}

// LotService covers the seller side of lots plus public browsing.
type LotService struct {
	lots *repositories.LotRepository
}

func NewLotService(lots *repositories.LotRepository) *LotService {
	return &LotService{lots: lots}
}

// Create lists a new lot owned by sellerID.
func (s *LotService) Create(ctx context.Context, sellerID string, in NewLot) (models.FlowerLot, error) {
	name, err := models.ParseFlowerName(in.FlowerName)
	if err != nil {
		return models.FlowerLot{}, invalid("flower_name", "Unavailable flower name")
	}
	color, err := models.ParseFlowerColor(in.FlowerColor)
	if err != nil {
		return models.FlowerLot{}, invalid("flower_color", "Unavailable flower color")
	}
	if in.FlowersAmount <= 0 {
		return models.FlowerLot{}, invalid("flowers_amount", "The flowers_amount must be greater than 0.")
	}
	price := in.PriceForOne.Round(2)
	if !price.IsPositive() {
		return models.FlowerLot{}, invalid("price_for_one", "The price_for_one must be greater than 0.")
	}

	displayed := true
	if in.IsDisplayed != nil {
		displayed = *in.IsDisplayed
	}

	lot := models.FlowerLot{
		SellerID:      sellerID,
		FlowerName:    name,
		FlowerColor:   color,
		IsDisplayed:   displayed,
		FlowersAmount: in.FlowersAmount,
		PriceForOne:   price,
	}
	if err := s.lots.Create(ctx, &lot); err != nil {
		return models.FlowerLot{}, err
	}

	logger.WithCtx(ctx).Info("lot created", "lot_id", lot.ID, "seller_id", sellerID, "flower", lot.FlowerName)
	return lot, nil
}

// SetDisplayed toggles visibility. Unknown and foreign lots both yield
// ErrLotNotFound.
func (s *LotService) SetDisplayed(ctx context.Context, sellerID string, lotID uint, displayed bool) error {
	found, err := s.lots.SetDisplayed(ctx, sellerID, lotID, displayed)
	if err != nil {
		return err
	}
	if !found {
		return ErrLotNotFound
	}
	return nil
}

// Owned lists every lot of sellerID.
func (s *LotService) Owned(ctx context.Context, sellerID string) ([]models.FlowerLot, error) {
	return s.lots.ListBySeller(ctx, sellerID)
}

// OwnedOne loads one lot of sellerID.
func (s *LotService) OwnedOne(ctx context.Context, sellerID string, lotID uint) (models.FlowerLot, error) {
	lot, err := s.lots.FindOwned(ctx, sellerID, lotID)
	if orm.IsNotFound(err) {
		return models.FlowerLot{}, ErrLotNotFound
	}
	return lot, err
}

// Delete removes an owned lot; deleting a missing lot succeeds. Orders keep
// their copied fields and lose only the lot reference.
func (s *LotService) Delete(ctx context.Context, sellerID string, lotID uint) error {
	if err := s.lots.DeleteOwned(ctx, sellerID, lotID); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("lot deleted", "lot_id", lotID, "seller_id", sellerID)
	return nil
}

// Browse lists displayed lots, optionally of one seller only.
func (s *LotService) Browse(ctx context.Context, sellerName string, page, limit int) ([]repositories.Listing, orm.Pagination, error) {
	return s.lots.ListDisplayed(ctx, sellerName, page, limit)
}
