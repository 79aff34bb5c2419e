package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleTrimStart moves the trim start handle. Values outside the video are
// clamped; a start at or past the current end is ignored.
func HandleTrimStart(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		t, err := bindTime(c)
		if err != nil {
			return err
		}
		s.SetTrimStart(t)
		pb := s.Playback()
		return c.JSON(http.StatusOK, trimView{Start: pb.TrimStart, End: pb.TrimEnd})
	}
}
