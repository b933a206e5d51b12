// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// This package is blank-imported by cmd/flowershop and by tests that need
// the schema.
package migrations
