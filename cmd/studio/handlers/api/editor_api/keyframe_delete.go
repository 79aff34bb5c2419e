package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleKeyframeDelete removes the keyframe at the given timestamp. Deleting
// an absent timestamp is a silent no-op.
func HandleKeyframeDelete(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		ts, err := common.RequireFloatParam(c, "ts")
		if err != nil {
			return err
		}
		s.DeleteKeyframe(ts)
		return c.NoContent(http.StatusNoContent)
	}
}
