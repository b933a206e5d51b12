package controllers

import (
	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/app/repositories"
	"github.com/shashiranjanraj/flowershop/app/services"
	"github.com/shashiranjanraj/flowershop/pkg/resource"
)

func userResource(u models.User) resource.Map {
	return resource.Map{
		"user_id":    u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"user_role":  u.Role,
		"created_at": resource.Timestamp(u.CreatedAt),
	}
}

func lotResource(l models.FlowerLot) resource.Map {
	return resource.Map{
		"lot_id":         l.ID,
		"seller_id":      l.SellerID,
		"flower_name":    l.FlowerName,
		"flower_color":   l.FlowerColor,
		"is_displayed":   l.IsDisplayed,
		"flowers_amount": l.FlowersAmount,
		"price_for_one":  resource.Money(l.PriceForOne),
		"created_at":     resource.Timestamp(l.CreatedAt),
	}
}

func listingResource(l repositories.Listing) resource.Map {
	out := lotResource(l.FlowerLot)
	out["seller"] = l.SellerName
	return out
}

func receiptResource(r services.Receipt) resource.Map {
	return resource.Map{
		"order_id":      r.Order.ID,
		"lot_id":        r.Order.LotID,
		"customer":      r.Customer,
		"seller":        r.Seller,
		"flower_name":   r.Order.FlowerName,
		"flower_color":  r.Order.FlowerColor,
		"quantity":      r.Order.Quantity,
		"price_for_one": resource.Money(r.Order.PriceForOne),
		"full_price":    resource.Money(r.Order.FullPrice),
		"created_at":    resource.Timestamp(r.Order.CreatedAt),
	}
}

func dealResource(d repositories.Deal) resource.Map {
	return resource.Map{
		"order_id":     d.OrderID,
		"lot_id":       d.LotID,
		"customer":     d.Customer,
		"seller":       d.Seller,
		"flower_name":  d.FlowerName,
		"flower_color": d.FlowerColor,
		"quantity":     d.Quantity,
		"full_price":   resource.Money(d.FullPrice),
		"created_at":   resource.Timestamp(d.CreatedAt),
	}
}

func lotCommentResource(c models.LotComment) resource.Map {
	return resource.Map{
		"comment_id":  c.ID,
		"lot_id":      c.LotID,
		"reviewer_id": c.ReviewerID,
		"text":        c.Text,
		"rating":      c.Rating,
		"created_at":  resource.Timestamp(c.CreatedAt),
	}
}

func sellerCommentResource(c models.SellerComment) resource.Map {
	return resource.Map{
		"comment_id":  c.ID,
		"seller_id":   c.SellerID,
		"reviewer_id": c.ReviewerID,
		"text":        c.Text,
		"rating":      c.Rating,
		"created_at":  resource.Timestamp(c.CreatedAt),
	}
}
