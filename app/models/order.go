package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable purchase record. The flower fields and unit price are
// copied from the lot at purchase time, so an order stays meaningful after its
// lot is deleted and LotID becomes NULL.
type Order struct {
	ID          uint            `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	LotID       *uint           `gorm:"index" json:"lot_id"`
	Lot         *FlowerLot      `gorm:"foreignKey:LotID;references:ID;constraint:OnDelete:SET NULL" json:"-"`
	SellerID    string          `gorm:"size:36;not null;index" json:"seller_id"`
	Seller      *User           `gorm:"foreignKey:SellerID;references:ID" json:"-"`
	CustomerID  string          `gorm:"size:36;not null;index" json:"customer_id"`
	Customer    *User           `gorm:"foreignKey:CustomerID;references:ID" json:"-"`
	Quantity    int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	FullPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"full_price"`
	FlowerName  FlowerName      `gorm:"size:16;not null" json:"flower_name"`
	FlowerColor FlowerColor     `gorm:"size:16;not null" json:"flower_color"`
	PriceForOne decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_for_one"`
	CreatedAt   time.Time       `json:"created_at"`
}
