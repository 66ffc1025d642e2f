package pawsserver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/paws-adoption-api/internal/shared/search"
)

var errMissingIDHeader = errors.New("header id is required")

type pageQuery struct {
	Page int      `form:"page"`
	Sort []string `form:"sort"`
}

// bindPage reads page, size and the repeatable sort parameter. The pet search
// shares "size" with its size filter, so textSizes lets non-numeric values
// through instead of rejecting them.
func bindPage(c *gin.Context, limits search.Limits, textSizes bool) (search.PageRequest, error) {
	var query pageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return search.PageRequest{}, fmt.Errorf("%w: %w", search.ErrInvalidPageRequest, err)
	}
	size, err := pageSize(c.QueryArray("size"), textSizes)
	if err != nil {
		return search.PageRequest{}, err
	}
	orders := make([]search.Order, 0, len(query.Sort))
	for _, raw := range query.Sort {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		order, err := search.ParseOrder(raw)
		if err != nil {
			return search.PageRequest{}, err
		}
		orders = append(orders, order)
	}
	return limits.Request(query.Page, size, orders)
}

func pageSize(values []string, textSizes bool) (int, error) {
	for _, raw := range values {
		size, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil {
			return size, nil
		}
		if !textSizes {
			return 0, fmt.Errorf("%w: size %q", search.ErrInvalidPageRequest, raw)
		}
	}
	return 0, nil
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondBadRequest(c, fmt.Errorf("invalid %s: %q", name, c.Param(name)))
		return 0, false
	}
	return id, true
}

// parseIDHeader reads the id header used by the delete routes.
func parseIDHeader(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.GetHeader("id"))
	if raw == "" {
		respondBadRequest(c, errMissingIDHeader)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondBadRequest(c, fmt.Errorf("invalid id header: %q", raw))
		return 0, false
	}
	return id, true
}
