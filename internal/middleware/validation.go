package middleware

import (
	"math"
	"strconv"
	"strings"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"

	"github.com/gofiber/fiber/v2"
)

const PageKey = "page"

// assumedPageSize bounds page when no limit is given; no service defaults above it.
const assumedPageSize = 100

// Pagination validates the page and limit query parameters and stores a dto.PageRequest in
// the context locals. Absent parameters are left at zero for the service to default.
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var errs domain.ValidationErrors
		page, ok := positiveQueryInt(c, "page")
		if !ok {
			errs = append(errs, domain.ValidationError{Field: "page", Message: "must be a positive integer", Value: c.Query("page")})
		}
		limit, ok := positiveQueryInt(c, "limit")
		if !ok {
			errs = append(errs, domain.ValidationError{Field: "limit", Message: "must be a positive integer", Value: c.Query("limit")})
		}
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}

		size := limit
		if size == 0 {
			size = assumedPageSize
		}
		if page > math.MaxInt/size {
			return domain.NewValidationError("page", "is too large for the requested limit", c.Query("page"))
		}

		c.Locals(PageKey, dto.PageRequest{Page: page, Limit: limit})
		return c.Next()
	}
}

// PageFrom returns the page stored by Pagination, or the zero request.
func PageFrom(c *fiber.Ctx) dto.PageRequest {
	p, _ := c.Locals(PageKey).(dto.PageRequest)
	return p
}

func positiveQueryInt(c *fiber.Ctx, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
