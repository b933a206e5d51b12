package controllers

import (
	"github.com/shashiranjanraj/flowershop/app/services"
	"github.com/shashiranjanraj/flowershop/pkg/ctx"
	"github.com/shashiranjanraj/flowershop/pkg/resource"
)

type registrationInput struct {
	Username string `json:"username"  validate:"required,max=32"`
	Email    string `json:"email"     validate:"required,email"`
	Role     string `json:"user_role" validate:"required"`
	Password string `json:"password"  validate:"required"`
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /registration/new.
func (a *AuthController) Register(c *ctx.Context) {
	var in registrationInput
	if !c.BindJSON(&in) {
		return
	}

	user, err := a.service.Register(c.Context(), services.Registration(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(resource.One(user, userResource))
}

// Login handles POST /login.
func (a *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}

	pair, err := a.service.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(pair)
}

// Refresh handles GET /refresh: a valid token of either kind buys a new pair.
func (a *AuthController) Refresh(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	pair, err := a.service.Refresh(p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(pair)
}
