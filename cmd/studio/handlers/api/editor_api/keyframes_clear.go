package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleKeyframesClear discards all recorded keyframes.
func HandleKeyframesClear(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		s.ClearTrack()
		return c.NoContent(http.StatusNoContent)
	}
}
