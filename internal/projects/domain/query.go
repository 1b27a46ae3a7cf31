package domain

// ListQuery carries the optional filter/sort/page parameters of
// GET /projects. All filters combine with logical AND.
type ListQuery struct {
	Search     string   `form:"search"`
	Technology string   `form:"technology"`
	Tech       string   `form:"tech"`
	UserID     string   `form:"user_id"`
	MinRating  *float64 `form:"min_rating"`
	MaxRating  *float64 `form:"max_rating"`
	Language   string   `form:"language"`
	Sort       string   `form:"sort"`
	Order      string   `form:"order"`
	Page       *int     `form:"page"`
	PageSize   *int     `form:"page_size"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// TechnologyFilter resolves the technology/tech parameter alias.
func (q ListQuery) TechnologyFilter() string {
	if q.Technology != "" {
		return q.Technology
	}
	return q.Tech
}

// EffectivePage is the requested page floored at 1.
func (q ListQuery) EffectivePage() int {
	if q.Page == nil || *q.Page < 1 {
		return 1
	}
	return *q.Page
}

// EffectivePageSize is the requested page size clamped to [1, 100],
// defaulting to 10 when absent.
func (q ListQuery) EffectivePageSize() int {
	if q.PageSize == nil {
		return defaultPageSize
	}
	size := *q.PageSize
	if size < 1 {
		return 1
	}
	if size > maxPageSize {
		return maxPageSize
	}
	return size
}

// Offset is the row offset for the effective page.
func (q ListQuery) Offset() int {
	return (q.EffectivePage() - 1) * q.EffectivePageSize()
}

// SortField returns the allow-listed column for ORDER BY. Anything outside
// the allow-list falls back to created_at; only these literals may ever be
// interpolated into a statement.
func (q ListQuery) SortField() string {
	switch q.Sort {
	case "name", "created_at", "updated_at", "rating":
		return q.Sort
	default:
		return "created_at"
	}
}

// SortOrder returns ASC or DESC, defaulting to DESC.
func (q ListQuery) SortOrder() string {
	switch q.Order {
	case "asc":
		return "ASC"
	case "desc":
		return "DESC"
	default:
		return "DESC"
	}
}

// Pagination is the metadata block of a paginated response.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination computes total_pages = ceil(totalItems/pageSize), floored
// at 1 even when totalItems is 0.
func NewPagination(page, pageSize int, totalItems int64) Pagination {
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
