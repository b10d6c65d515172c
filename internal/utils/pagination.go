package utils

import (
	"strconv"

	"github.com/askbob/project-management-api/internal/config"
	apierrors "github.com/askbob/project-management-api/internal/errors"
	"github.com/gin-gonic/gin"
)

// PaginationParams holds the limit/offset extracted from a list request.
type PaginationParams struct {
	Limit  int
	Offset int
}

// GetPaginationParams extracts the limit and offset query parameters. Missing
// parameters take the configured defaults; out-of-range or unparseable values
// are reported as field errors for the caller to collect into a 422 response.
func GetPaginationParams(c *gin.Context, page config.PageConfig) (PaginationParams, []apierrors.FieldError) {
	params := PaginationParams{Limit: page.DefaultSize}

	var details []apierrors.FieldError
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			details = append(details, apierrors.FieldError{Field: "limit", Message: "must be an integer"})
		case limit < 1:
			details = append(details, apierrors.FieldError{Field: "limit", Message: "must be at least 1"})
		case limit > page.MaxSize:
			details = append(details, apierrors.FieldError{Field: "limit", Message: "must be at most " + strconv.Itoa(page.MaxSize)})
		default:
			params.Limit = limit
		}
	}

	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			details = append(details, apierrors.FieldError{Field: "offset", Message: "must be an integer"})
		case offset < 0:
			details = append(details, apierrors.FieldError{Field: "offset", Message: "must be at least 0"})
		default:
			params.Offset = offset
		}
	}

	return params, details
}
