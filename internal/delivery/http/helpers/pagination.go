package helpers

import (
	"net/http"
	"strconv"

	"eventrsvp/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParsePagination reads page and limit from the request query string, clamps
// them to valid ranges, and returns domain.PaginationParams. Invalid or
// missing values fall back to defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	page := DefaultPage
	if s := r.URL.Query().Get("page"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			page = v
		}
	}
	pageSize := DefaultPageSize
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			pageSize = v
			if pageSize > MaxPageSize {
				pageSize = MaxPageSize
			}
		}
	}
	return domain.PaginationParams{Page: page, PageSize: pageSize}
}

// PaginationMeta is the pagination metadata included in paginated list
// responses. Count is the number of items on this page.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Count int `json:"count"`
}

// NewPaginationMeta builds PaginationMeta from the request's pagination
// params and the number of items returned.
func NewPaginationMeta(p domain.PaginationParams, count int) PaginationMeta {
	return PaginationMeta{Page: p.Page, Limit: p.PageSize, Count: count}
}
