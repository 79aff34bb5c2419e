package session_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/internal/session"
)

// sessionDetail is the full state view the extension uses to re-attach after
// a popup or tab reload.
type sessionDetail struct {
	Session   *session.Session      `json:"session"`
	Selection editor.SelectionRect  `json:"selection"`
	Playback  session.PlaybackState `json:"playback"`
}

// HandleGet returns a session with its current selection and playback state.
func HandleGet(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, sessionDetail{
			Session:   s,
			Selection: s.Selection(),
			Playback:  s.Playback(),
		})
	}
}
