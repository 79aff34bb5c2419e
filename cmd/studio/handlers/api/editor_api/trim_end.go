package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleTrimEnd moves the trim end handle with the same clamp-or-ignore
// policy as the start handle.
func HandleTrimEnd(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		t, err := bindTime(c)
		if err != nil {
			return err
		}
		s.SetTrimEnd(t)
		pb := s.Playback()
		return c.JSON(http.StatusOK, trimView{Start: pb.TrimStart, End: pb.TrimEnd})
	}
}
