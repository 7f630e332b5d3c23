package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/spandanmajumder/portfolio/internal/api/middleware"
	"github.com/spandanmajumder/portfolio/internal/core/domain"
)

// ctxSession returns the session injected by the Session middleware. A
// missing session means the route was registered outside the admin group.
func ctxSession(c echo.Context) (*domain.Session, error) {
	s, ok := c.Get(middleware.SessionContextKey).(*domain.Session)
	if !ok || s == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return s, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "id must be a positive integer")
	}
	return id, nil
}
