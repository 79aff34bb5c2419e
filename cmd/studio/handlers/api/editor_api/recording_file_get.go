package editor_api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleRecordingFileGet serializes the current track and trim into the
// recording wire format. YAML when the Accept header or ?format= asks for
// it, JSON otherwise.
func HandleRecordingFileGet(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		file := s.RecordingFile()

		hint := c.QueryParam("format")
		if hint == "" {
			hint = c.Request().Header.Get(echo.HeaderAccept)
		}
		if strings.Contains(hint, "yaml") || strings.Contains(hint, "yml") {
			c.Response().Header().Set(echo.HeaderContentType, "application/yaml")
			c.Response().WriteHeader(http.StatusOK)
			return file.EncodeYAML(c.Response().Writer)
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c.Response().WriteHeader(http.StatusOK)
		return file.EncodeJSON(c.Response().Writer)
	}
}
