package pagination

import (
	"strconv"

	"github.com/fieldpost/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Moderation lists (feedback records, pages, widgets) are read by one admin;
// the page size stays small and the cap modest.
const (
	defaultSize = 10
	maxSize     = 50
)

// Query is the clamped page/size pair read from the request.
type Query struct {
	Page int
	Size int
}

// FromContext reads ?page= and ?size=, substituting defaults and clamping
// out-of-range values instead of erroring.
func FromContext(c *gin.Context) Query {
	q := Query{Page: 1, Size: defaultSize}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		q.Size = v
	}
	if q.Size > maxSize {
		q.Size = maxSize
	}
	return q
}

// List runs one page of the given query and returns the items with the
// pagination envelope metadata. Ordering is the caller's business; every
// listing here wants its own sort.
func List[T any](c *gin.Context, db *gorm.DB) ([]T, response.Pagination, error) {
	q := FromContext(c)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, response.Pagination{}, err
	}

	items := make([]T, 0, q.Size)
	offset := (q.Page - 1) * q.Size
	if err := db.Offset(offset).Limit(q.Size).Find(&items).Error; err != nil {
		return nil, response.Pagination{}, err
	}

	totalPage := int((total + int64(q.Size) - 1) / int64(q.Size))
	return items, response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   totalPage,
		Size:        q.Size,
		HasNextPage: q.Page < totalPage,
	}, nil
}
