package services_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/app/repositories"
	"github.com/shashiranjanraj/flowershop/app/services"
	"github.com/shashiranjanraj/flowershop/pkg/auth"
	"github.com/shashiranjanraj/flowershop/pkg/testkit"

	_ "github.com/shashiranjanraj/flowershop/database/migrations"
)

const password = "Qwerty1_}"

type fixture struct {
	db       *gorm.DB
	codec    *auth.Codec
	auth     *services.AuthService
	lots     *services.LotService
	orders   *services.OrderService
	comments *services.CommentService
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db := testkit.DB(t)
	codec, err := auth.NewCodec(auth.TokenConfig{Secret: "test-secret"})
	require.NoError(t, err)

	users := repositories.NewUserRepository(db)
	lots := repositories.NewLotRepository(db)
	orders := repositories.NewOrderRepository(db)
	comments := repositories.NewCommentRepository(db)

	return &fixture{
		db:       db,
		codec:    codec,
		auth:     services.NewAuthService(users, codec),
		lots:     services.NewLotService(lots),
		orders:   services.NewOrderService(db, lots, orders, users),
		comments: services.NewCommentService(comments, lots, users),
	}
}

func (f *fixture) register(t *testing.T, username string, role auth.Role) models.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), services.Registration{
		Username: username,
		Email:    strings.ToLower(username) + "@example.com",
		Role:     string(role),
		Password: password,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) lot(t *testing.T, seller models.User, name, color string, amount int, price string) models.FlowerLot {
	t.Helper()
	lot, err := f.lots.Create(context.Background(), seller.ID, services.NewLot{
		FlowerName:    name,
		FlowerColor:   color,
		FlowersAmount: amount,
		PriceForOne:   decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return lot
}

func (f *fixture) amount(t *testing.T, lotID uint) int {
	t.Helper()
	var lot models.FlowerLot
	require.NoError(t, f.db.First(&lot, "lot_id = ?", lotID).Error)
	return lot.FlowersAmount
}

// ─── Registration / login ─────────────────────────────────────────────────────

func TestRegisterConflicts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.register(t, "FlowerSeller", auth.RoleSeller)

	cases := []struct {
		name     string
		username string
		email    string
		want     []string
	}{
		{"username taken", "FlowerSeller", "other@example.com", []string{"username"}},
		{"email taken", "OtherSeller", "flowerseller@example.com", []string{"email"}},
		{"both taken", "FlowerSeller", "flowerseller@example.com", []string{"username", "email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, services.Registration{
				Username: tc.username, Email: tc.email, Role: "seller", Password: password,
			})
			var conflict *services.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, tc.want, conflict.Fields)
		})
	}

	var n int64
	require.NoError(t, f.db.Model(&models.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	cases := []struct {
		in    services.Registration
		field string
	}{
		{services.Registration{Username: "lowercase", Email: "a@example.com", Role: "seller", Password: password}, "username"},
		{services.Registration{Username: "GoodName", Email: "a@example.com", Role: "admin", Password: password}, "user_role"},
		{services.Registration{Username: "GoodName", Email: "a@example.com", Role: "customer", Password: "weak"}, "password"},
	}
	for _, tc := range cases {
		_, err := f.auth.Register(ctx, tc.in)
		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr, "field %s", tc.field)
		assert.Contains(t, verr.Fields, tc.field)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	f := setup(t)
	u := f.register(t, "FlowerCustomer", auth.RoleCustomer)

	assert.NotEqual(t, password, u.Password)
	assert.True(t, auth.CheckPassword(u.Password, password))
	assert.Equal(t, auth.RoleCustomer, u.Role)
	assert.Len(t, u.ID, 36)
}

func TestLogin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.register(t, "FlowerCustomer", auth.RoleCustomer)

	pair, err := f.auth.Login(ctx, "FlowerCustomer", password)
	require.NoError(t, err)
	for _, tok := range []string{pair.AccessToken, pair.RefreshToken} {
		id, err := f.codec.Verify(tok)
		require.NoError(t, err)
		assert.Equal(t, u.ID, id)
	}

	_, err = f.auth.Login(ctx, "FlowerCustomer", "Wrong1_}pass")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "Nobody", password)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

// ─── Lots ─────────────────────────────────────────────────────────────────────

func TestCreateLotValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	seller := f.register(t, "FlowerSeller", auth.RoleSeller)

	cases := map[string]services.NewLot{
		"flower_name":    {FlowerName: "cactus", FlowerColor: "red", FlowersAmount: 1, PriceForOne: decimal.NewFromInt(1)},
		"flower_color":   {FlowerName: "rose", FlowerColor: "purple", FlowersAmount: 1, PriceForOne: decimal.NewFromInt(1)},
		"flowers_amount": {FlowerName: "rose", FlowerColor: "red", FlowersAmount: 0, PriceForOne: decimal.NewFromInt(1)},
		"price_for_one":  {FlowerName: "rose", FlowerColor: "red", FlowersAmount: 1, PriceForOne: decimal.Zero},
	}
	for field, in := range cases {
		_, err := f.lots.Create(ctx, seller.ID, in)
		var verr *services.ValidationError
		require.ErrorAs(t, err, &verr, field)
		assert.Contains(t, verr.Fields, field)
	}

	lot := f.lot(t, seller, "rose", "red", 10, "2.5")
	assert.True(t, lot.IsDisplayed)
	assert.Equal(t, "2.50", lot.PriceForOne.StringFixed(2))
}

func TestSetDisplayedOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	owner := f.register(t, "FlowerSeller", auth.RoleSeller)
	other := f.register(t, "OtherSeller", auth.RoleSeller)
	lot := f.lot(t, owner, "tulip", "yellow", 5, "1.20")

	assert.ErrorIs(t, f.lots.SetDisplayed(ctx, other.ID, lot.ID, false), services.ErrLotNotFound)
	assert.ErrorIs(t, f.lots.SetDisplayed(ctx, owner.ID, 999, false), services.ErrLotNotFound)

	require.NoError(t, f.lots.SetDisplayed(ctx, owner.ID, lot.ID, false))
	// Setting the same value again still succeeds.
	require.NoError(t, f.lots.SetDisplayed(ctx, owner.ID, lot.ID, false))

	got, err := f.lots.OwnedOne(ctx, owner.ID, lot.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDisplayed)

	_, err = f.lots.OwnedOne(ctx, other.ID, lot.ID)
	assert.ErrorIs(t, err, services.ErrLotNotFound)
}

func TestBrowseShowsDisplayedLotsOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := f.register(t, "AliceSeller", auth.RoleSeller)
	bob := f.register(t, "BobSeller", auth.RoleSeller)

	f.lot(t, alice, "rose", "red", 10, "2.50")
	hidden := f.lot(t, alice, "protea", "blue", 3, "9.99")
	f.lot(t, bob, "tulip", "yellow", 25, "1.20")
	require.NoError(t, f.lots.SetDisplayed(ctx, alice.ID, hidden.ID, false))

	all, _, err := f.lots.Browse(ctx, "", 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "AliceSeller", all[0].SellerName)
	assert.Equal(t, "BobSeller", all[1].SellerName)

	bobs, _, err := f.lots.Browse(ctx, "BobSeller", 0, 0)
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, models.Tulip, bobs[0].FlowerName)

	none, _, err := f.lots.Browse(ctx, "Nobody", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	page, p, err := f.lots.Browse(ctx, "", 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "BobSeller", page[0].SellerName)
	assert.EqualValues(t, 2, p.Total)
	assert.Equal(t, 2, p.LastPage)
}

// ─── Orders ───────────────────────────────────────────────────────────────────

func TestPlaceOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	seller := f.register(t, "FlowerSeller", auth.RoleSeller)
	customer := f.register(t, "FlowerCustomer", auth.RoleCustomer)
	lot := f.lot(t, seller, "rose", "red", 10, "2.50")

	receipt, err := f.orders.PlaceOrder(ctx, customer.Principal(), lot.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, "10.00", receipt.Order.FullPrice.StringFixed(2))
	assert.Equal(t, "2.50", receipt.Order.PriceForOne.StringFixed(2))
	assert.Equal(t, models.Rose, receipt.Order.FlowerName)
	assert.Equal(t, "FlowerSeller", receipt.Seller)
	assert.Equal(t, "FlowerCustomer", receipt.Customer)
	assert.Equal(t, 6, f.amount(t, lot.ID))

	_, err = f.orders.PlaceOrder(ctx, customer.Principal(), lot.ID, 10)
	var stock *services.InsufficientStockError
	require.ErrorAs(t, err, &stock)
	assert.Equal(t, 6, stock.Available)
	assert.Equal(t, "Available flower amount: 6, got: 10", stock.Error())
	assert.Equal(t, 6, f.amount(t, lot.ID))

	_, err = f.orders.PlaceOrder(ctx, customer.Principal(), lot.ID, 0)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)

	_, err = f.orders.PlaceOrder(ctx, customer.Principal(), 999, 1)
	assert.ErrorIs(t, err, services.ErrLotNotFound)

	var n int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestConcurrentOrdersNeverOversell(t *testing.T) {
	f := setup(t)
	seller := f.register(t, "FlowerSeller", auth.RoleSeller)
	first := f.register(t, "FirstCustomer", auth.RoleCustomer)
	second := f.register(t, "SecondCustomer", auth.RoleCustomer)
	lot := f.lot(t, seller, "chamomile", "green", 5, "0.75")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, c := range []models.User{first, second} {
		wg.Add(1)
		go func(i int, c models.User) {
			defer wg.Done()
			_, errs[i] = f.orders.PlaceOrder(context.Background(), c.Principal(), lot.ID, 3)
		}(i, c)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, models.ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 2, f.amount(t, lot.ID))
}

func TestDeletedLotKeepsOrderHistory(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	seller := f.register(t, "FlowerSeller", auth.RoleSeller)
	customer := f.register(t, "FlowerCustomer", auth.RoleCustomer)
	lot := f.lot(t, seller, "rose", "red", 10, "2.50")

	receipt, err := f.orders.PlaceOrder(ctx, customer.Principal(), lot.ID, 2)
	require.NoError(t, err)

	require.NoError(t, f.lots.Delete(ctx, seller.ID, lot.ID))
	// Deleting again, or deleting a missing lot, is not an error.
	require.NoError(t, f.lots.Delete(ctx, seller.ID, lot.ID))

	var order models.Order
	require.NoError(t, f.db.First(&order, "order_id = ?", receipt.Order.ID).Error)
	assert.Nil(t, order.LotID)
	assert.Equal(t, models.Rose, order.FlowerName)
	assert.Equal(t, "5.00", order.FullPrice.StringFixed(2))

	deals, err := f.orders.Deals(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Nil(t, deals[0].LotID)
}

func TestDealsAndSalesReport(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	seller := f.register(t, "FlowerSeller", auth.RoleSeller)
	alice := f.register(t, "AliceCustomer", auth.RoleCustomer)
	bob := f.register(t, "BobCustomer", auth.RoleCustomer)
	lot := f.lot(t, seller, "rose", "red", 20, "2.50")

	for _, buy := range []struct {
		who models.User
		qty int
	}{{alice, 1}, {alice, 2}, {bob, 4}} {
		_, err := f.orders.PlaceOrder(ctx, buy.who.Principal(), lot.ID, buy.qty)
		require.NoError(t, err)
	}

	sellerDeals, err := f.orders.Deals(ctx, seller.ID)
	require.NoError(t, err)
	assert.Len(t, sellerDeals, 3)

	aliceDeals, err := f.orders.Deals(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceDeals, 2)
	assert.Equal(t, "AliceCustomer", aliceDeals[0].Customer)
	assert.Equal(t, "FlowerSeller", aliceDeals[0].Seller)

	var buf bytes.Buffer
	n, err := f.orders.WriteSalesReport(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var report []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, []map[string]string{
		{"seller": "FlowerSeller", "customer": "AliceCustomer", "sum_price": "7.50"},
		{"seller": "FlowerSeller", "customer": "BobCustomer", "sum_price": "10.00"},
	}, report)
}

func TestSalesReportEmpty(t *testing.T) {
	f := setup(t)

	var buf bytes.Buffer
	n, err := f.orders.WriteSalesReport(context.Background(), &buf)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.JSONEq(t, `[]`, buf.String())
}

// ─── Comments ─────────────────────────────────────────────────────────────────

func TestComments(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	seller := f.register(t, "FlowerSeller", auth.RoleSeller)
	customer := f.register(t, "FlowerCustomer", auth.RoleCustomer)
	lot := f.lot(t, seller, "tulip", "yellow", 5, "1.20")
	five := 5

	c, err := f.comments.CommentLot(ctx, customer.ID, lot.ID, services.Comment{Text: "Lovely tulips", Rating: &five})
	require.NoError(t, err)
	assert.Equal(t, lot.ID, c.LotID)

	_, err = f.comments.CommentLot(ctx, customer.ID, lot.ID, services.Comment{Text: "No rating"})
	require.NoError(t, err)

	_, err = f.comments.CommentLot(ctx, customer.ID, 999, services.Comment{Text: "?"})
	assert.ErrorIs(t, err, services.ErrLotNotFound)

	six := 6
	_, err = f.comments.CommentLot(ctx, customer.ID, lot.ID, services.Comment{Text: "Too good", Rating: &six})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "rating")

	_, err = f.comments.CommentLot(ctx, customer.ID, lot.ID, services.Comment{Text: "  "})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "text")

	list, err := f.comments.LotComments(ctx, lot.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Lovely tulips", list[0].Text)
	assert.Nil(t, list[1].Rating)

	_, err = f.comments.CommentSeller(ctx, customer.ID, "FlowerSeller", services.Comment{Text: "Fast delivery"})
	require.NoError(t, err)

	_, err = f.comments.CommentSeller(ctx, seller.ID, "FlowerCustomer", services.Comment{Text: "Not a seller"})
	assert.ErrorIs(t, err, services.ErrSellerNotFound)

	sellerComments, err := f.comments.SellerComments(ctx, "FlowerSeller")
	require.NoError(t, err)
	require.Len(t, sellerComments, 1)
	assert.Equal(t, seller.ID, sellerComments[0].SellerID)

	empty, err := f.comments.SellerComments(ctx, "Nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
