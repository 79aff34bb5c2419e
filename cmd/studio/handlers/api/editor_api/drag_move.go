package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleDragMove moves the selection during a drag, clamped to the canvas.
func HandleDragMove(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		p, err := bindPoint(c)
		if err != nil {
			return err
		}
		s.MoveDrag(p)
		return c.JSON(http.StatusOK, s.Selection())
	}
}
