// Package resource shapes models into the JSON a client sees.
//
// A transformer is a plain function from a model to a Map:
//
//	func LotResource(l models.FlowerLot) resource.Map {
//	    return resource.Map{"lot_id": l.ID, "price_for_one": resource.Money(l.PriceForOne)}
//	}
//
//	c.Success(resource.One(lot, LotResource))
//	c.Success(resource.Collection(lots, LotResource))
package resource

import (
	"time"

	"github.com/shopspring/decimal"
)

// Map is the output of a transformer.
type Map = map[string]interface{}

// Transformer converts one model into its public shape.
type Transformer[T any] func(T) Map

// One applies t to a single model.
func One[T any](item T, t Transformer[T]) Map {
	return t(item)
}

// Collection applies t to every item. An empty input yields an empty,
// non-nil slice so it encodes as [] rather than null.
func Collection[T any](items []T, t Transformer[T]) []Map {
	out := make([]Map, 0, len(items))
	for _, item := range items {
		out = append(out, t(item))
	}
	return out
}

// Money renders an amount with exactly two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Timestamp renders t in RFC 3339 UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
