package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/pkg/orm"
)

// Deal is an order seen from either side, with both usernames resolved.
type Deal struct {
	OrderID     uint               `gorm:"column:order_id"`
	LotID       *uint              `gorm:"column:lot_id"`
	FlowerName  models.FlowerName  `gorm:"column:flower_name"`
	FlowerColor models.FlowerColor `gorm:"column:flower_color"`
	Quantity    int                `gorm:"column:quantity"`
	FullPrice   decimal.Decimal    `gorm:"column:full_price"`
	CreatedAt   time.Time          `gorm:"column:created_at"`
	Customer    string             `gorm:"column:customer"`
	Seller      string             `gorm:"column:seller"`
}

// SalesTotal is the money one customer paid one seller.
type SalesTotal struct {
	Seller   string          `gorm:"column:seller" json:"seller"`
	Customer string          `gorm:"column:customer" json:"customer"`
	Total    decimal.Decimal `gorm:"column:total" json:"total"`
}

// OrderRepository handles database operations for Order. Orders are
// immutable, so there is no update or delete.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

func (r *OrderRepository) query(ctx context.Context) *orm.Query {
	return orm.New(r.db).WithContext(ctx)
}

// Create persists a new order.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.query(ctx).Create(order)
}

// Find loads one order by id.
func (r *OrderRepository) Find(ctx context.Context, orderID uint) (models.Order, error) {
	var order models.Order
	err := r.query(ctx).Where("order_id = ?", orderID).First(&order)
	return order, err
}

// Deals returns the orders where userID is the customer or the seller.
func (r *OrderRepository) Deals(ctx context.Context, userID string) ([]Deal, error) {
	deals := []Deal{}
	err := r.query(ctx).
		Table("orders").
		Select("orders.order_id, orders.lot_id, orders.flower_name, orders.flower_color, " +
			"orders.quantity, orders.full_price, orders.created_at, " +
			"c.username AS customer, s.username AS seller").
		Joins("JOIN users c ON c.user_id = orders.customer_id").
		Joins("JOIN users s ON s.user_id = orders.seller_id").
		Where("orders.customer_id = ? OR orders.seller_id = ?", userID, userID).
		Order("orders.order_id").
		Scan(&deals)
	return deals, err
}

// SalesTotals sums full_price per (seller, customer) pair.
func (r *OrderRepository) SalesTotals(ctx context.Context) ([]SalesTotal, error) {
	totals := []SalesTotal{}
	err := r.query(ctx).
		Table("orders").
		Select("s.username AS seller, c.username AS customer, SUM(orders.full_price) AS total").
		Joins("JOIN users c ON c.user_id = orders.customer_id").
		Joins("JOIN users s ON s.user_id = orders.seller_id").
		Group("s.username, c.username").
		Order("s.username, c.username").
		Scan(&totals)
	for i := range totals {
		totals[i].Total = totals[i].Total.Round(2)
	}
	return totals, err
}
