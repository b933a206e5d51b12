package models

import "time"

// LotComment is append-only feedback on a lot.
type LotComment struct {
	ID         uint       `gorm:"column:comment_id;primaryKey;autoIncrement" json:"comment_id"`
	Text       string     `gorm:"type:text;not null" json:"text"`
	Rating     *int       `gorm:"check:rating IS NULL OR (rating >= 0 AND rating <= 5)" json:"rating"`
	LotID      uint       `gorm:"not null;index" json:"lot_id"`
	Lot        *FlowerLot `gorm:"foreignKey:LotID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	ReviewerID string     `gorm:"size:36;not null;index" json:"reviewer_id"`
	Reviewer   *User      `gorm:"foreignKey:ReviewerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SellerComment is append-only feedback on a seller.
type SellerComment struct {
	ID         uint      `gorm:"column:comment_id;primaryKey;autoIncrement" json:"comment_id"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	Rating     *int      `gorm:"check:rating IS NULL OR (rating >= 0 AND rating <= 5)" json:"rating"`
	SellerID   string    `gorm:"size:36;not null;index" json:"seller_id"`
	Seller     *User     `gorm:"foreignKey:SellerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	ReviewerID string    `gorm:"size:36;not null;index" json:"reviewer_id"`
	Reviewer   *User     `gorm:"foreignKey:ReviewerID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
