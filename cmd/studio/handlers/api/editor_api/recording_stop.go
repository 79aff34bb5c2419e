package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleRecordingStop ends the recording pass, keeping the captured
// keyframes. Stopping when not recording is a no-op.
func HandleRecordingStop(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		s.StopRecording()
		return c.JSON(http.StatusOK, s.Playback())
	}
}
