package search

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ErrInvalidPageRequest signals malformed pagination or sort parameters.
var ErrInvalidPageRequest = errors.New("invalid page request")

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order sorts results by a public property name.
type Order struct {
	Property  string    `json:"property"`
	Direction Direction `json:"direction"`
}

// Descending reports whether the order is reversed.
func (o Order) Descending() bool { return o.Direction == Desc }

// ParseOrder reads the "property[,asc|desc]" form used by the query string.
func ParseOrder(raw string) (Order, error) {
	parts := strings.Split(raw, ",")
	property := strings.TrimSpace(parts[0])
	if property == "" || len(parts) > 2 {
		return Order{}, fmt.Errorf("%w: sort %q", ErrInvalidPageRequest, raw)
	}
	order := Order{Property: property, Direction: Asc}
	if len(parts) == 2 {
		switch strings.ToUpper(strings.TrimSpace(parts[1])) {
		case "", string(Asc):
		case string(Desc):
			order.Direction = Desc
		default:
			return Order{}, fmt.Errorf("%w: sort direction %q", ErrInvalidPageRequest, parts[1])
		}
	}
	return order, nil
}

// PageRequest selects a zero-based page of results.
type PageRequest struct {
	Page int
	Size int
	Sort []Order
}

// Offset returns the number of rows preceding the page. It saturates at
// math.MaxInt so pages far past the end stay past the end.
func (r PageRequest) Offset() int {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

// Limits bounds the page size accepted from callers.
type Limits struct {
	DefaultSize int
	MaxSize     int
}

// DefaultLimits applies when no configuration overrides them.
var DefaultLimits = Limits{DefaultSize: 20, MaxSize: 100}

// Request validates caller-provided paging values. A non-positive size selects
// the default size and sizes above the maximum are clamped.
func (l Limits) Request(page, size int, sort []Order) (PageRequest, error) {
	if page < 0 {
		return PageRequest{}, fmt.Errorf("%w: page must not be negative", ErrInvalidPageRequest)
	}
	if l.DefaultSize <= 0 {
		l.DefaultSize = DefaultLimits.DefaultSize
	}
	if l.MaxSize <= 0 {
		l.MaxSize = DefaultLimits.MaxSize
	}
	switch {
	case size <= 0:
		size = l.DefaultSize
	case size > l.MaxSize:
		size = l.MaxSize
	}
	return PageRequest{Page: page, Size: size, Sort: sort}, nil
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content          []T     `json:"content"`
	TotalElements    int64   `json:"totalElements"`
	TotalPages       int     `json:"totalPages"`
	Number           int     `json:"number"`
	Size             int     `json:"size"`
	NumberOfElements int     `json:"numberOfElements"`
	First            bool    `json:"first"`
	Last             bool    `json:"last"`
	Empty            bool    `json:"empty"`
	Sort             []Order `json:"sort"`
}

// NewPage assembles page metadata from the requested window and total count.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	sort := req.Sort
	if sort == nil {
		sort = []Order{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Number:           req.Page,
		Size:             req.Size,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page >= totalPages-1,
		Empty:            len(content) == 0,
		Sort:             sort,
	}
}

// MapPage converts page content while keeping its metadata.
func MapPage[T, U any](page Page[T], fn func(T) U) Page[U] {
	content := make([]U, 0, len(page.Content))
	for _, item := range page.Content {
		content = append(content, fn(item))
	}
	return Page[U]{
		Content:          content,
		TotalElements:    page.TotalElements,
		TotalPages:       page.TotalPages,
		Number:           page.Number,
		Size:             page.Size,
		NumberOfElements: len(content),
		First:            page.First,
		Last:             page.Last,
		Empty:            len(content) == 0,
		Sort:             page.Sort,
	}
}

// Sortable whitelists the properties an entity may be ordered by.
type Sortable[E any] map[string]SortField[E]

// Validate rejects orders on unknown properties.
func (s Sortable[E]) Validate(orders []Order) error {
	for _, order := range orders {
		if _, ok := s[order.Property]; !ok {
			return fmt.Errorf("%w: cannot sort by %q", ErrInvalidPageRequest, order.Property)
		}
	}
	return nil
}

// Sort orders entities in place by the requested orders, then by id.
func (s Sortable[E]) Sort(entities []E, orders []Order, id func(E) int64) {
	slices.SortStableFunc(entities, func(a, b E) int {
		for _, order := range orders {
			field, ok := s[order.Property]
			if !ok {
				continue
			}
			c := field.Compare(a, b)
			if order.Descending() {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(id(a), id(b))
	})
}

// Window returns the slice of entities covered by req.
func Window[E any](entities []E, req PageRequest) []E {
	start := req.Offset()
	if start < 0 || start >= len(entities) || req.Size <= 0 {
		return []E{}
	}
	end := start + min(req.Size, len(entities)-start)
	return entities[start:end]
}
