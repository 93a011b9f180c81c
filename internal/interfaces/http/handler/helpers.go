package handler

import (
	"fmt"
	"time"

	"github.com/easygo-schools/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// bindPagination binds and normalizes page/page_size query parameters
func bindPagination(c *gin.Context) (dto.ListRequest, error) {
	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		return list, err
	}
	list.Normalize()
	return list, nil
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter
func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: expected YYYY-MM-DD", name)
	}
	return &t, nil
}

// parseUUIDQuery parses an optional UUID query parameter
func parseUUIDQuery(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: expected UUID", name)
	}
	return &id, nil
}
