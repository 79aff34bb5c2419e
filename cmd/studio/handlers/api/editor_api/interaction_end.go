package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleInteractionEnd commits the active drag, resize, or zoom and fires
// the selection-changed notification. Registered for all three release
// routes; ending with no active interaction is a no-op.
func HandleInteractionEnd(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		s.EndInteraction()
		return c.JSON(http.StatusOK, s.Selection())
	}
}
