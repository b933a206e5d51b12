// Package orm is a thin query builder over gorm that records query latency
// and adds pagination. Every Query is bound to an explicit *gorm.DB.
package orm

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/pkg/metrics"
)

// ErrNotFound is returned by First when no row matches.
var ErrNotFound = gorm.ErrRecordNotFound

// Pagination describes one page of a result set.
type Pagination struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	LastPage int   `json:"last_page"`
}

type Query struct {
	db *gorm.DB
}

// New wraps db.
func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

// WithContext binds ctx to every statement the query runs.
func (q *Query) WithContext(ctx context.Context) *Query {
	return &Query{db: q.db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Table(name string) *Query {
	return &Query{db: q.db.Table(name)}
}

func (q *Query) Select(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Select(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Group(name string) *Query {
	return &Query{db: q.db.Group(name)}
}

// Get loads every matching row into dest.
func (q *Query) Get(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

// Scan runs a raw projection (joins, aggregates) into dest.
func (q *Query) Scan(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Scan(dest).Error
}

// First loads the first matching row, or returns ErrNotFound.
func (q *Query) First(dest interface{}) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

// Exists reports whether any row matches.
func (q *Query) Exists() (bool, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	var n int64
	if err := q.db.Limit(1).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts v.
func (q *Query) Create(v interface{}) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(v).Error
}

// UpdateColumn sets a single column on the matched rows without hooks and
// returns the number of affected rows.
func (q *Query) UpdateColumn(column string, value interface{}) (int64, error) {
	defer metrics.ObserveDBQuery("update", time.Now())
	res := q.db.UpdateColumn(column, value)
	return res.RowsAffected, res.Error
}

// Update sets a single column on the matched rows and returns the number of
// affected rows.
func (q *Query) Update(column string, value interface{}) (int64, error) {
	defer metrics.ObserveDBQuery("update", time.Now())
	res := q.db.Update(column, value)
	return res.RowsAffected, res.Error
}

// Delete removes the matched rows of model's table.
func (q *Query) Delete(model interface{}) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())
	res := q.db.Delete(model)
	return res.RowsAffected, res.Error
}

// Paginate loads one page into dest. A page below 1 loads everything.
func (q *Query) Paginate(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		if err := q.Scan(dest); err != nil {
			return Pagination{}, err
		}
		return Pagination{}, nil
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	start := time.Now()
	err := q.db.Session(&gorm.Session{}).Select("count(*)").Count(&total).Error
	metrics.ObserveDBQuery("select", start)
	if err != nil {
		return Pagination{}, err
	}

	paged := &Query{db: q.db.Offset((page - 1) * limit).Limit(limit)}
	if err := paged.Scan(dest); err != nil {
		return Pagination{}, err
	}

	return Pagination{
		Total:    total,
		Page:     page,
		Limit:    limit,
		LastPage: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// IsNotFound reports whether err means "no such row".
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
