package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// zoomRequest is a normalized wheel delta from the overlay.
type zoomRequest struct {
	Delta float64 `json:"delta"`
}

// HandleZoom adjusts the selection zoom. The change is applied immediately
// but observers are only notified when the interaction ends.
func HandleZoom(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		var req zoomRequest
		if err := c.Bind(&req); err != nil {
			return common.ErrBadRequest("invalid request body")
		}
		s.Zoom(req.Delta)
		return c.JSON(http.StatusOK, s.Selection())
	}
}
