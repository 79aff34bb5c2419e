package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/internal/session"
)

// resizeBeginRequest carries the pressed handle and pointer position. Handle
// may be empty, in which case it is resolved by hit-testing the position.
type resizeBeginRequest struct {
	Handle string  `json:"handle"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// HandleResizeBegin starts a corner resize.
func HandleResizeBegin(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		var req resizeBeginRequest
		if err := c.Bind(&req); err != nil {
			return common.ErrBadRequest("invalid request body")
		}
		p := editor.Point{X: req.X, Y: req.Y}
		h := editor.Handle(req.Handle)
		if h == "" {
			h = s.HandleAt(p)
		}
		s.BeginResize(h, p)
		return c.JSON(http.StatusOK, s.Selection())
	}
}
