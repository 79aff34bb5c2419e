package editor_api

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleRecordingFilePut replaces the session's keyframe track from an
// uploaded recording file. The Content-Type header selects YAML or JSON.
func HandleRecordingFilePut(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}

		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return common.ErrBadRequest("failed to read request body")
		}

		file, err := editor.DecodeRecordingFile(body, c.Request().Header.Get(echo.HeaderContentType))
		if err != nil {
			return common.ErrUnprocessable("invalid recording file: " + err.Error())
		}

		imported := s.ImportRecording(file)
		return c.JSON(http.StatusOK, map[string]any{
			"imported": imported,
			"total":    file.TotalKeyframes,
		})
	}
}
