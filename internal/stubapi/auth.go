package stubapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// requireToken validates the bearer JWT and stores the user ID in the
// context. Failures answer 401 with the backend's error envelope.
func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, errorBody{Error: "Missing Authorization Header"})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.JSON(http.StatusUnauthorized, errorBody{Error: "Invalid Authorization Header"})
		}

		id, err := s.users.parse(parts[1])
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorBody{Error: "Token has expired or is invalid"})
		}

		c.Set(userIDKey, id)
		return next(c)
	}
}
