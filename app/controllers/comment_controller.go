package controllers

import (
	"github.com/shashiranjanraj/flowershop/app/services"
	"github.com/shashiranjanraj/flowershop/pkg/ctx"
	"github.com/shashiranjanraj/flowershop/pkg/resource"
)

type commentInput struct {
	Text   string `json:"text"   validate:"required"`
	Rating *int   `json:"rating" validate:"nullable,between=0,5"`
}

type CommentController struct {
	service *services.CommentService
}

func NewCommentController(service *services.CommentService) *CommentController {
	return &CommentController{service: service}
}

// CommentLot handles POST /lot/{lot_id}/comment.
func (cc *CommentController) CommentLot(c *ctx.Context) {
	reviewer, ok := principal(c)
	if !ok {
		return
	}
	lotID, ok := lotIDParam(c)
	if !ok {
		return
	}
	var in commentInput
	if !c.BindJSON(&in) {
		return
	}

	comment, err := cc.service.CommentLot(c.Context(), reviewer.ID, lotID, services.Comment(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(resource.One(comment, lotCommentResource))
}

// LotComments handles GET /lot/{lot_id}/comment.
func (cc *CommentController) LotComments(c *ctx.Context) {
	lotID, ok := lotIDParam(c)
	if !ok {
		return
	}

	comments, err := cc.service.LotComments(c.Context(), lotID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.Collection(comments, lotCommentResource))
}

// CommentSeller handles POST /saller/{name}/comment.
func (cc *CommentController) CommentSeller(c *ctx.Context) {
	reviewer, ok := principal(c)
	if !ok {
		return
	}
	var in commentInput
	if !c.BindJSON(&in) {
		return
	}

	comment, err := cc.service.CommentSeller(c.Context(), reviewer.ID, c.Param("name"), services.Comment(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(resource.One(comment, sellerCommentResource))
}

// SellerComments handles GET /saller/{name}/comment.
func (cc *CommentController) SellerComments(c *ctx.Context) {
	comments, err := cc.service.SellerComments(c.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.Collection(comments, sellerCommentResource))
}
