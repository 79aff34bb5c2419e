package common

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/internal/session"
)

// RequireSession resolves the :id route parameter against the session table.
// Returns 404 when the session does not exist.
func RequireSession(c echo.Context, sessions *session.Manager) (*session.Session, error) {
	id := c.Param("id")
	s, err := sessions.Get(id)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrNotFound("session not found")
		}
		return nil, ErrInternal(err.Error())
	}
	return s, nil
}

// RequireFloatQuery parses a required float query parameter.
func RequireFloatQuery(c echo.Context, name string) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, ErrBadRequest(name + " is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ErrBadRequest("invalid " + name)
	}
	return v, nil
}

// BoolQuery parses an optional boolean query parameter, defaulting to false.
func BoolQuery(c echo.Context, name string) bool {
	v, _ := strconv.ParseBool(c.QueryParam(name))
	return v
}

// RequireFloatParam parses a float route parameter.
func RequireFloatParam(c echo.Context, name string) (float64, error) {
	v, err := strconv.ParseFloat(c.Param(name), 64)
	if err != nil {
		return 0, ErrBadRequest("invalid " + name)
	}
	return v, nil
}
