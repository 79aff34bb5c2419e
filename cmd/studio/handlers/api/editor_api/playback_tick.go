package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// tickResponse echoes back the (possibly loop-wrapped) playhead so the
// extension can reposition the player when the preview loops.
type tickResponse struct {
	Time     float64               `json:"time"`
	Playback session.PlaybackState `json:"playback"`
}

// HandleTick ingests a player time-update. While recording, the current
// selection snapshot is sampled into the keyframe track.
func HandleTick(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		t, err := bindTime(c)
		if err != nil {
			return err
		}
		looped := s.Tick(t)
		return c.JSON(http.StatusOK, tickResponse{Time: looped, Playback: s.Playback()})
	}
}
