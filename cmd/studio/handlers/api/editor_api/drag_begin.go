package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleDragBegin starts a drag when the press lands inside the selection.
// Presses outside the rect are silently ignored, matching pointer-event
// robustness in the overlay.
func HandleDragBegin(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		p, err := bindPoint(c)
		if err != nil {
			return err
		}
		s.BeginDrag(p)
		return c.JSON(http.StatusOK, s.Selection())
	}
}
