package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleSeek moves the playhead, clamped into the trim window.
func HandleSeek(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		t, err := bindTime(c)
		if err != nil {
			return err
		}
		s.Seek(t)
		return c.JSON(http.StatusOK, s.Playback())
	}
}
