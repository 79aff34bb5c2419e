package editor_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/internal/session"
)

// interpolateResponse carries the reconstructed selection for the overlay.
// Selection is null when the track is empty.
type interpolateResponse struct {
	Time      float64               `json:"time"`
	Selection *editor.SelectionRect `json:"selection"`
}

// HandleInterpolate reconstructs the selection at ?t= for live preview.
// ?smoothing=true applies the eased interpolation curve.
func HandleInterpolate(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		t, err := common.RequireFloatQuery(c, "t")
		if err != nil {
			return err
		}
		smoothing := common.BoolQuery(c, "smoothing")
		return c.JSON(http.StatusOK, interpolateResponse{
			Time:      t,
			Selection: s.Interpolate(t, smoothing),
		})
	}
}
