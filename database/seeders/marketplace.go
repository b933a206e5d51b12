package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/pkg/auth"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "Qwerty1_}"

func init() {
	Register("marketplace", SeedMarketplace)
}

// SeedMarketplace creates one seller with a few lots and one customer.
// Running it twice does not duplicate anything.
func SeedMarketplace(db *gorm.DB) error {
	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	seller := models.User{Username: "DemoSeller", Email: "seller@example.com", Password: hash, Role: auth.RoleSeller}
	if err := db.Where(models.User{Username: seller.Username}).FirstOrCreate(&seller).Error; err != nil {
		return err
	}

	customer := models.User{Username: "DemoCustomer", Email: "customer@example.com", Password: hash, Role: auth.RoleCustomer}
	if err := db.Where(models.User{Username: customer.Username}).FirstOrCreate(&customer).Error; err != nil {
		return err
	}

	var n int64
	if err := db.Model(&models.FlowerLot{}).Where("seller_id = ?", seller.ID).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	lots := []models.FlowerLot{
		{SellerID: seller.ID, FlowerName: models.Rose, FlowerColor: models.Red, IsDisplayed: true, FlowersAmount: 10, PriceForOne: decimal.RequireFromString("2.50")},
		{SellerID: seller.ID, FlowerName: models.Tulip, FlowerColor: models.Yellow, IsDisplayed: true, FlowersAmount: 25, PriceForOne: decimal.RequireFromString("1.20")},
		{SellerID: seller.ID, FlowerName: models.Protea, FlowerColor: models.Blue, IsDisplayed: false, FlowersAmount: 3, PriceForOne: decimal.RequireFromString("9.99")},
	}
	return db.Create(&lots).Error
}
