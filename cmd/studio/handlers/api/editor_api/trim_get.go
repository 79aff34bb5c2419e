package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// trimView is the trim window as the extension's timeline renders it.
type trimView struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// HandleTrimGet returns the current trim window.
func HandleTrimGet(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		pb := s.Playback()
		return c.JSON(http.StatusOK, trimView{Start: pb.TrimStart, End: pb.TrimEnd})
	}
}
