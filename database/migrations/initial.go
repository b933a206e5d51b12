package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/pkg/migration"
)

func init() {
	migration.Register("20230301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20230301000001_create_flower_lots_table", &CreateFlowerLotsTable{})
	migration.Register("20230301000002_create_orders_table", &CreateOrdersTable{})
	migration.Register("20230301000003_create_comments_tables", &CreateCommentsTables{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}

// -------- 0002: flower lots --------

type CreateFlowerLotsTable struct{}

func (m *CreateFlowerLotsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.FlowerLot{})
}

func (m *CreateFlowerLotsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.FlowerLot{})
}

// -------- 0003: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Order{})
}

// -------- 0004: lot and seller comments --------

type CreateCommentsTables struct{}

func (m *CreateCommentsTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.LotComment{}, &models.SellerComment{})
}

func (m *CreateCommentsTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.SellerComment{}, &models.LotComment{})
}
