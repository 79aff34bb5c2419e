package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleSelectionRestore replaces the selection rect wholesale, used when the
// extension re-attaches and replays its last known overlay position.
func HandleSelectionRestore(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		var rect editor.SelectionRect
		if err := c.Bind(&rect); err != nil {
			return common.ErrBadRequest("invalid request body")
		}
		s.RestoreSelection(rect)
		return c.JSON(http.StatusOK, s.Selection())
	}
}
