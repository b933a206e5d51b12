package services

import (
	"context"
	"strings"
	"unicode"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/app/repositories"
	"github.com/shashiranjanraj/flowershop/pkg/auth"
	"github.com/shashiranjanraj/flowershop/pkg/logger"
	"github.com/shashiranjanraj/flowershop/pkg/orm"
)

const maxUsernameLength = 32

// Registration is the input of Register.
type Registration struct {
	Username string
	Email    string
	Role     string
	Password string
}

type AuthService struct {
	users  *repositories.UserRepository
	tokens *auth.Codec
}

func NewAuthService(users *repositories.UserRepository, tokens *auth.Codec) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user after checking the username, role and password
// rules. A taken username or email yields a *ConflictError naming every
// colliding field.
func (s *AuthService) Register(ctx context.Context, in Registration) (models.User, error) {
	if !validUsername(in.Username) {
		return models.User{}, invalid("username", "The username must contain upper and lower case letters and be at most 32 characters.")
	}
	role, err := auth.ParseRole(in.Role)
	if err != nil {
		return models.User{}, invalid("user_role", "Available roles: customer/seller")
	}
	if !auth.StrongPassword(in.Password) {
		return models.User{}, invalid("password", "Password must contain 8 to 20 symbols, 1 uppercase and 1 lowercase letter, 1 digit and 1 special character")
	}

	if taken, err := s.users.Collisions(ctx, in.Username, in.Email); err != nil {
		return models.User{}, err
	} else if len(taken) > 0 {
		return models.User{}, &ConflictError{Fields: taken}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// Lost a race with a concurrent registration: report what collided.
		if taken, cerr := s.users.Collisions(ctx, in.Username, in.Email); cerr == nil && len(taken) > 0 {
			return models.User{}, &ConflictError{Fields: taken}
		}
		return models.User{}, err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Login checks the credentials and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (auth.TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if orm.IsNotFound(err) {
			return auth.TokenPair{}, ErrInvalidCredentials
		}
		return auth.TokenPair{}, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return auth.TokenPair{}, ErrInvalidCredentials
	}
	return s.tokens.IssuePair(user.ID)
}

// Refresh issues a new pair for an identity the gate already verified.
func (s *AuthService) Refresh(identity string) (auth.TokenPair, error) {
	return s.tokens.IssuePair(identity)
}

func validUsername(name string) bool {
	if name == "" || len([]rune(name)) > maxUsernameLength || strings.TrimSpace(name) != name {
		return false
	}
	var upper, lower bool
	for _, r := range name {
		upper = upper || unicode.IsUpper(r)
		lower = lower || unicode.IsLower(r)
	}
	return upper && lower
}
