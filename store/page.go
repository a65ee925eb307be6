package store

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Order is one sort key. Property is the JSON field name, mapped to a column
// through a per-entity whitelist.
type Order struct {
	Property string
	Desc     bool
}

// Pageable selects a zero-based page of results.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

// NewPageable clamps page and size into range.
func NewPageable(page, size int, sort ...Order) Pageable {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Pageable{Page: page, Size: size, Sort: sort}
}

// ParseSort reads "field,asc|desc" (direction optional, ascending by default).
func ParseSort(values ...string) []Order {
	var out []Order
	for _, v := range values {
		parts := strings.Split(v, ",")
		prop := strings.TrimSpace(parts[0])
		if prop == "" {
			continue
		}
		o := Order{Property: prop}
		if len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
			o.Desc = true
		}
		out = append(out, o)
	}
	return out
}

func (p Pageable) offset() int { return p.Page * p.Size }

// apply adds ORDER BY, LIMIT and OFFSET. Unknown sort properties are ignored;
// id is always the last key so pages are stable.
func (p Pageable) apply(db *gorm.DB, columns map[string]string) *gorm.DB {
	hasID := false
	for _, o := range p.Sort {
		col, ok := columns[o.Property]
		if !ok {
			continue
		}
		if col == "id" {
			hasID = true
		}
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: o.Desc})
	}
	if !hasID {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return db.Limit(p.Size).Offset(p.offset())
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content       []T
	TotalElements int64
	Number        int
	Size          int
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

func (p Page[T]) First() bool { return p.Number == 0 }

func (p Page[T]) Last() bool { return p.Number+1 >= p.TotalPages() }

// MapPage converts page content, keeping the paging metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := Page[R]{TotalElements: p.TotalElements, Number: p.Number, Size: p.Size, Content: make([]R, 0, len(p.Content))}
	for _, v := range p.Content {
		out.Content = append(out.Content, fn(v))
	}
	return out
}

// paginate counts q and loads the requested page into a Page.
func paginate[T any](q *gorm.DB, p Pageable, columns map[string]string, preload ...string) (Page[T], error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}
	var rows []T
	find := p.apply(q.Session(&gorm.Session{}), columns)
	for _, assoc := range preload {
		find = find.Preload(assoc)
	}
	if err := find.Find(&rows).Error; err != nil {
		return Page[T]{}, err
	}
	if rows == nil {
		rows = []T{}
	}
	return Page[T]{Content: rows, TotalElements: total, Number: p.Page, Size: p.Size}, nil
}
