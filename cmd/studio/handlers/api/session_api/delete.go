package session_api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleDelete closes a session. Editor state is in-memory only, so this
// discards any unexported recording.
func HandleDelete(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := sessions.Delete(c.Param("id")); err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				return common.ErrNotFound("session not found")
			}
			return common.ErrInternal(err.Error())
		}
		return c.NoContent(http.StatusNoContent)
	}
}
