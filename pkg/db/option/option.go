package option

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// QueryOption mutates a gorm statement before execution.
type QueryOption interface {
	Apply(*gorm.DB) *gorm.DB
}

type optionFunc func(*gorm.DB) *gorm.DB

func (f optionFunc) Apply(db *gorm.DB) *gorm.DB { return f(db) }

// WithQuerySortBy sanitizes a caller-supplied sort column against an
// allow-list and returns an ORDER BY expression, empty when not allowed.
func WithQuerySortBy(sortBy, orderBy string, allowed map[string]bool) string {
	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" || !allowed[sortBy] {
		return ""
	}
	direction := "ASC"
	if strings.EqualFold(strings.TrimSpace(orderBy), "desc") {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", sortBy, direction)
}

// WithSortBy orders the query by the given expression. Empty expressions
// fall back to identity ascending so paging stays stable.
func WithSortBy(expr string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(expr) == "" {
			return db.Order("id ASC")
		}
		return db.Order(expr)
	})
}

// WithLimit caps the number of rows returned.
func WithLimit(n int) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if n <= 0 {
			return db
		}
		return db.Limit(n)
	})
}

// WithAfterID restricts results to ids greater than the cursor.
func WithAfterID(id int64) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		if id <= 0 {
			return db
		}
		return db.Where("id > ?", id)
	})
}

// WithFilter adds an equality filter on a column.
func WithFilter(column string, value any) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		return db.Where(fmt.Sprintf("%s = ?", column), value)
	})
}

// WithSearch adds a case-insensitive prefix match on a text column.
func WithSearch(column, term string) QueryOption {
	return optionFunc(func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		return db.Where(fmt.Sprintf("LOWER(%s) LIKE ?", column), strings.ToLower(term)+"%")
	})
}
