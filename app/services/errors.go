package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/flowershop/app/models"
)

// Business errors. Controllers map them to HTTP statuses in one place.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLotNotFound        = errors.New("lot not found")
	ErrSellerNotFound     = errors.New("seller not found")
)

// ValidationError carries per-field messages for input the service rejected.
type ValidationError struct {
	Fields map[string]string
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError names the unique fields that another user already holds.
type ConflictError struct {
	Fields []string
}

func (e *ConflictError) Error() string {
	return "already exists: " + strings.Join(e.Fields, ", ")
}

// Messages renders one client-facing sentence per colliding field.
func (e *ConflictError) Messages() []string {
	out := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, fmt.Sprintf("Specified %s already exists", f))
	}
	return out
}

// InsufficientStockError reports how many flowers a lot actually holds.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Available flower amount: %d, got: %d", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return models.ErrInsufficientStock }
