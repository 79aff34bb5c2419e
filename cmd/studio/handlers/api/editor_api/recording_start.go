package editor_api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleRecordingStart begins a motion recording pass. Any previous keyframes
// are cleared. Starting while already recording is a 409.
func HandleRecordingStart(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		if err := s.StartRecording(); err != nil {
			if errors.Is(err, editor.ErrRecordingActive) {
				return common.ErrConflict("recording already active")
			}
			return common.ErrInternal(err.Error())
		}
		return c.JSON(http.StatusOK, s.Playback())
	}
}
