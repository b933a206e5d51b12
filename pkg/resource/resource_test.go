package resource_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/flowershop/pkg/resource"
)

type lot struct {
	ID    uint
	Price decimal.Decimal
}

func lotResource(l lot) resource.Map {
	return resource.Map{"lot_id": l.ID, "price_for_one": resource.Money(l.Price)}
}

func TestCollectionNeverNull(t *testing.T) {
	raw, err := json.Marshal(resource.Collection([]lot(nil), lotResource))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestMoneyKeepsTwoPlaces(t *testing.T) {
	out := resource.One(lot{ID: 1, Price: decimal.RequireFromString("2.5")}, lotResource)
	assert.Equal(t, "2.50", out["price_for_one"])
	assert.Equal(t, "10.00", resource.Money(decimal.NewFromInt(10)))
}

func TestTimestampIsUTC(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "2024-03-01T11:00:00Z", resource.Timestamp(ts))
}
