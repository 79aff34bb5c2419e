// package session_api provides editing-session API handlers.
package session_api

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/session"
	"thirdcoast.systems/clipstudio/pkg/utils/geometry"
)

// createRequest is sent by the extension when it attaches to a player tab.
// Canvas is the player viewport in CSS pixels; when omitted the session edits
// against the source's intrinsic frame.
type createRequest struct {
	SourcePath string        `json:"source_path"`
	Canvas     geometry.Size `json:"canvas"`
}

// HandleCreate probes the source video and opens an editing session.
func HandleCreate(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req createRequest
		if err := c.Bind(&req); err != nil {
			return common.ErrBadRequest("invalid request body")
		}
		req.SourcePath = strings.TrimSpace(req.SourcePath)
		if req.SourcePath == "" {
			return common.ErrBadRequest("source_path is required")
		}
		if _, err := os.Stat(req.SourcePath); err != nil {
			return common.ErrNotFound("source file not found")
		}

		s, err := sessions.Create(c.Request().Context(), req.SourcePath, req.Canvas)
		if err != nil {
			slog.Error("failed to create session", "error", err, "source", req.SourcePath)
			return common.ErrUnprocessable(err.Error())
		}

		return c.JSON(http.StatusCreated, s)
	}
}
