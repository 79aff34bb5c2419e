package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

// HandleCanvasUpdate records a new player viewport size. The selection is
// re-clamped against the new bounds; invalid sizes are ignored.
func HandleCanvasUpdate(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		var canvas geometry.Size
		if err := c.Bind(&canvas); err != nil {
			return common.ErrBadRequest("invalid request body")
		}
		s.SetCanvasSize(canvas)
		return c.JSON(http.StatusOK, s.Selection())
	}
}
