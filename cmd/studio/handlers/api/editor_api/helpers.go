// package editor_api exposes the editor core (selection, playback, keyframe
// track, trim) over the extension HTTP API. One handler per operation; the
// request bodies mirror the extension's pointer and player events.
package editor_api

import (
	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/editor"
)

// pointRequest is a pointer event position in canvas pixels.
type pointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// timeRequest is a player timestamp in seconds.
type timeRequest struct {
	Time float64 `json:"time"`
}

func bindPoint(c echo.Context) (editor.Point, error) {
	var req pointRequest
	if err := c.Bind(&req); err != nil {
		return editor.Point{}, common.ErrBadRequest("invalid request body")
	}
	return editor.Point{X: req.X, Y: req.Y}, nil
}

func bindTime(c echo.Context) (float64, error) {
	var req timeRequest
	if err := c.Bind(&req); err != nil {
		return 0, common.ErrBadRequest("invalid request body")
	}
	return req.Time, nil
}
