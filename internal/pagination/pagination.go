package pagination

import (
	"math"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	MaxPage      = 10000
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page  int `form:"page" binding:"omitempty,min=1,max=10000"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Defaults fills in default values when page or limit are not provided.
func (p *PageRequest) Defaults() {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Valid reports whether Page and Limit are within bounds. Zero values are
// valid and mean "use the default".
func (p PageRequest) Valid() bool {
	return p.Page >= 0 && p.Page <= MaxPage && p.Limit >= 0 && p.Limit <= MaxLimit
}

// Offset returns the row offset for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes the position of a page within a result set.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// NewMeta builds pagination metadata; Pages is ceil(total/limit).
func NewMeta(page, limit int, total int64) Meta {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Meta{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}

// Window returns a GORM scope that applies OFFSET and LIMIT. A non-positive
// limit leaves the query unbounded.
func Window(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if offset > 0 {
			db = db.Offset(offset)
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}
