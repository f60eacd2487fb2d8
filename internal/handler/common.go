package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/circleshare/service-sharing/internal/domain"
)

const (
	defaultFrom = 0
	defaultSize = 10
)

// parseIDParam extracts and validates a UUID path parameter.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("malformed " + name + " parameter")
	}
	return id, nil
}

// parsePaging extracts the from/size query pair, falling back to defaults.
// Range validation happens in the page request, not here.
func parsePaging(c *gin.Context) (from, size int, err error) {
	from, err = intQuery(c, "from", defaultFrom)
	if err != nil {
		return 0, 0, err
	}
	size, err = intQuery(c, "size", defaultSize)
	if err != nil {
		return 0, 0, err
	}
	return from, size, nil
}

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("malformed " + name + " parameter")
	}
	return v, nil
}
