package export_api

import (
	"errors"
	"mime"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/render"
)

// HandleDownload serves a finished export file as an attachment.
func HandleDownload(store *render.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := store.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, render.ErrJobNotFound) {
				return common.ErrNotFound("export not found")
			}
			return common.ErrInternal(err.Error())
		}
		if job.Status != render.StatusReady {
			return common.ErrConflict("export not ready")
		}
		if _, err := os.Stat(job.OutputPath); err != nil {
			return common.ErrNotFound("export file missing")
		}

		ext := filepath.Ext(job.OutputPath)
		if ct := mime.TypeByExtension(ext); ct != "" {
			c.Response().Header().Set(echo.HeaderContentType, ct)
		}
		return c.Attachment(job.OutputPath, "clip-"+job.ID+ext)
	}
}
