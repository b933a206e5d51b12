package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/app/repositories"
	"github.com/shashiranjanraj/flowershop/pkg/auth"
	"github.com/shashiranjanraj/flowershop/pkg/logger"
	"github.com/shashiranjanraj/flowershop/pkg/metrics"
	"github.com/shashiranjanraj/flowershop/pkg/orm"
)

// Receipt is a committed order with both parties' usernames.
type Receipt struct {
	Order    models.Order
	Customer string
	Seller   string
}

// OrderService runs the purchase transaction and serves order history.
type OrderService struct {
	db     *gorm.DB
	lots   *repositories.LotRepository
	orders *repositories.OrderRepository
	users  *repositories.UserRepository
}

func NewOrderService(db *gorm.DB, lots *repositories.LotRepository, orders *repositories.OrderRepository, users *repositories.UserRepository) *OrderService {
	return &OrderService{db: db, lots: lots, orders: orders, users: users}
}

// PlaceOrder buys quantity flowers of lotID for customer. The stock
// decrement and the order insert commit together or not at all.
func (s *OrderService) PlaceOrder(ctx context.Context, customer auth.Principal, lotID uint, quantity int) (Receipt, error) {
	log := logger.WithCtx(ctx).With("customer_id", customer.ID, "lot_id", lotID, "quantity", quantity)

	if quantity <= 0 {
		metrics.RecordOrderFailure("invalid_quantity")
		return Receipt{}, models.ErrInvalidQuantity
	}

	lot, err := s.lots.Find(ctx, lotID)
	if err != nil {
		if orm.IsNotFound(err) {
			metrics.RecordOrderFailure("lot_not_found")
			return Receipt{}, ErrLotNotFound
		}
		metrics.RecordOrderFailure("error")
		return Receipt{}, err
	}

	// Cheap pre-check on the snapshot; the conditional update below is
	// what actually guards the stock.
	snapshot := lot
	if err := snapshot.Decrement(quantity); err != nil {
		metrics.RecordOrderFailure("insufficient_stock")
		log.Info("order rejected", "available", lot.FlowersAmount)
		return Receipt{}, &InsufficientStockError{Available: lot.FlowersAmount, Requested: quantity}
	}

	total := lot.Total(quantity)
	receipt := Receipt{Customer: customer.Username}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lots := s.lots.WithTx(tx)

		if err := lots.Decrement(ctx, lot.ID, quantity); err != nil {
			if !errors.Is(err, models.ErrInsufficientStock) {
				return err
			}
			current, ferr := lots.Find(ctx, lot.ID)
			if orm.IsNotFound(ferr) {
				return ErrLotNotFound
			}
			if ferr != nil {
				return ferr
			}
			return &InsufficientStockError{Available: current.FlowersAmount, Requested: quantity}
		}

		order := models.Order{
			LotID:       &lot.ID,
			SellerID:    lot.SellerID,
			CustomerID:  customer.ID,
			Quantity:    quantity,
			FullPrice:   total,
			FlowerName:  lot.FlowerName,
			FlowerColor: lot.FlowerColor,
			PriceForOne: lot.PriceForOne,
		}
		if err := s.orders.WithTx(tx).Create(ctx, &order); err != nil {
			return err
		}

		seller, err := s.users.WithTx(tx).FindByID(ctx, lot.SellerID)
		if err != nil {
			return err
		}

		receipt.Order = order
		receipt.Seller = seller.Username
		return nil
	})
	if err != nil {
		var stock *InsufficientStockError
		switch {
		case errors.As(err, &stock):
			metrics.RecordOrderFailure("insufficient_stock")
			log.Info("order rejected", "available", stock.Available)
		case errors.Is(err, ErrLotNotFound):
			metrics.RecordOrderFailure("lot_not_found")
		default:
			metrics.RecordOrderFailure("error")
			log.Error("order rolled back", "error", err)
		}
		return Receipt{}, err
	}

	metrics.RecordOrder(string(lot.FlowerName), quantity)
	log.Info("order placed", "order_id", receipt.Order.ID, "full_price", total.StringFixed(2))
	return receipt, nil
}

// Deals lists the orders where userID bought or sold.
func (s *OrderService) Deals(ctx context.Context, userID string) ([]repositories.Deal, error) {
	return s.orders.Deals(ctx, userID)
}

// SalesTotals sums revenue per seller and customer pair.
func (s *OrderService) SalesTotals(ctx context.Context) ([]repositories.SalesTotal, error) {
	return s.orders.SalesTotals(ctx)
}

// salesLine is one entry of the statistics report.
type salesLine struct {
	Seller   string `json:"seller"`
	Customer string `json:"customer"`
	SumPrice string `json:"sum_price"`
}

// WriteSalesReport writes SalesTotals to w as a JSON array of
// {seller, customer, sum_price} and returns how many lines it wrote.
func (s *OrderService) WriteSalesReport(ctx context.Context, w io.Writer) (int, error) {
	totals, err := s.SalesTotals(ctx)
	if err != nil {
		return 0, err
	}

	lines := make([]salesLine, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, salesLine{Seller: t.Seller, Customer: t.Customer, SumPrice: t.Total.StringFixed(2)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return len(lines), enc.Encode(lines)
}
