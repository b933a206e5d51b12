package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Inventory errors.
var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// FlowerName is the closed set of flowers a lot can hold.
type FlowerName string

const (
	Chamomile FlowerName = "chamomile"
	Tulip     FlowerName = "tulip"
	Rose      FlowerName = "rose"
	Protea    FlowerName = "protea"
)

// ParseFlowerName validates s against the known flower names.
func ParseFlowerName(s string) (FlowerName, error) {
	switch n := FlowerName(s); n {
	case Chamomile, Tulip, Rose, Protea:
		return n, nil
	}
	return "", fmt.Errorf("unavailable flower name %q", s)
}

// FlowerColor is the closed set of lot colours.
type FlowerColor string

const (
	Red    FlowerColor = "red"
	Green  FlowerColor = "green"
	Blue   FlowerColor = "blue"
	Yellow FlowerColor = "yellow"
)

// ParseFlowerColor validates s against the known colours.
func ParseFlowerColor(s string) (FlowerColor, error) {
	switch c := FlowerColor(s); c {
	case Red, Green, Blue, Yellow:
		return c, nil
	}
	return "", fmt.Errorf("unavailable flower color %q", s)
}

// FlowerLot is a seller's listed batch of flowers.
//
// FlowersAmount never goes below zero: the CHECK constraint backs up the
// conditional decrement used by the order flow.
type FlowerLot struct {
	ID            uint            `gorm:"column:lot_id;primaryKey;autoIncrement" json:"lot_id"`
	SellerID      string          `gorm:"size:36;not null;index" json:"seller_id"`
	Seller        *User           `gorm:"foreignKey:SellerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	FlowerName    FlowerName      `gorm:"size:16;not null;index" json:"flower_name"`
	FlowerColor   FlowerColor     `gorm:"size:16;not null" json:"flower_color"`
	IsDisplayed   bool            `gorm:"not null" json:"is_displayed"`
	FlowersAmount int             `gorm:"not null;check:flowers_amount >= 0" json:"flowers_amount"`
	PriceForOne   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_for_one"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Decrement removes q flowers from the in-memory lot.
func (l *FlowerLot) Decrement(q int) error {
	if q <= 0 {
		return ErrInvalidQuantity
	}
	if l.FlowersAmount < q {
		return ErrInsufficientStock
	}
	l.FlowersAmount -= q
	return nil
}

// Total is the exact price of q flowers at two decimal places.
func (l FlowerLot) Total(q int) decimal.Decimal {
	return l.PriceForOne.Mul(decimal.NewFromInt(int64(q))).Round(2)
}
