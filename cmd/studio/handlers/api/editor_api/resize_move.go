package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleResizeMove adjusts the selection during a corner resize.
func HandleResizeMove(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		p, err := bindPoint(c)
		if err != nil {
			return err
		}
		s.MoveResize(p)
		return c.JSON(http.StatusOK, s.Selection())
	}
}
