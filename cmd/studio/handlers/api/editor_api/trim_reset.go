package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleTrimReset restores the trim window to the full video.
func HandleTrimReset(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		s.ResetTrim()
		pb := s.Playback()
		return c.JSON(http.StatusOK, trimView{Start: pb.TrimStart, End: pb.TrimEnd})
	}
}
