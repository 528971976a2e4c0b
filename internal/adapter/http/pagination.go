package http

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageResponse is the envelope every paginated endpoint returns.
type PageResponse struct {
	Data        any   `json:"data"`
	TotalRows   int64 `json:"total_rows"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// pageParams reads ?page and ?page_size, clamping to sane bounds.
func pageParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.QueryParam("page_size"))
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func newPageResponse(data any, total int64, page, size int) PageResponse {
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return PageResponse{
		Data:        data,
		TotalRows:   total,
		TotalPages:  pages,
		CurrentPage: page,
		PageSize:    size,
	}
}
