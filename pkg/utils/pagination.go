package utils

import "math"

const (
	// DefaultPage is used when the caller supplies no page or an invalid one.
	DefaultPage = 1
	// DefaultLimit is used when the caller supplies no limit or an invalid one.
	DefaultLimit = 10
)

// PaginationParams holds pagination request parameters
type PaginationParams struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// PaginationMeta holds pagination response metadata
type PaginationMeta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalCount   int64 `json:"totalCount"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// GetPaginationParams coerces page and limit to sane values. Bad input never
// fails, it falls back to the defaults (parse-or-default).
func GetPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// CalculateOffset returns the SQL offset
func (p PaginationParams) CalculateOffset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// CalculateMeta generates pagination metadata
func CalculateMeta(totalCount int64, page, limit int) PaginationMeta {
	if limit < 1 {
		limit = DefaultLimit
	}
	totalPages := int(math.Ceil(float64(totalCount) / float64(limit)))
	if totalPages < 0 {
		totalPages = 0
	}

	return PaginationMeta{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalCount:   totalCount,
		ItemsPerPage: limit,
	}
}
