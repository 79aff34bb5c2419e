// package export_api provides export job API handlers.
package export_api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/editor"
	"thirdcoast.systems/clipstudio/internal/render"
	"thirdcoast.systems/clipstudio/internal/session"
	"thirdcoast.systems/clipstudio/pkg/ffmpeg"
)

// exportRequest selects the output container, quality tier, and optional
// appearance filters. Empty fields fall back to the configured defaults.
type exportRequest struct {
	Format  string              `json:"format" validate:"omitempty,oneof=mp4 webm gif"`
	Quality string              `json:"quality" validate:"omitempty,oneof=fast high max"`
	Filters []ffmpeg.FilterSpec `json:"filters"`
}

var validate = validator.New()

// HandleCreate builds an export spec from the session's current trim and
// keyframes and enqueues a render job. An empty trim window is a 422.
func HandleCreate(sessions *session.Manager, store *render.Store, pool *render.Pool, defaultFormat string) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}

		var req exportRequest
		if c.Request().ContentLength > 0 {
			if err := c.Bind(&req); err != nil {
				return common.ErrBadRequest("invalid request body")
			}
		}
		if err := validate.Struct(req); err != nil {
			return common.ErrBadRequest(err.Error())
		}
		if req.Format == "" {
			req.Format = defaultFormat
		}
		if req.Quality == "" {
			req.Quality = "high"
		}
		// Compile once up front so a bad filter stack fails the request, not
		// the render.
		if _, err := ffmpeg.CompileFilters(req.Filters); err != nil {
			return common.ErrUnprocessable(err.Error())
		}

		spec, err := s.BuildExportSpec()
		if err != nil {
			if errors.Is(err, editor.ErrNoKeyframes) {
				return common.ErrUnprocessable("no keyframes recorded in the trim window")
			}
			return common.ErrInternal(err.Error())
		}
		spec.Filters = req.Filters

		job := &render.Job{
			ID:         uuid.NewString(),
			SessionID:  s.ID,
			SourcePath: s.SourcePath,
			Format:     req.Format,
			Quality:    req.Quality,
			Spec:       *spec,
		}
		if err := store.Create(c.Request().Context(), job); err != nil {
			slog.Error("failed to enqueue export", "error", err, "session_id", s.ID)
			return common.ErrInternal("failed to enqueue export")
		}
		pool.Wake()

		slog.Info("export enqueued", "job_id", job.ID, "session_id", s.ID, "format", job.Format)
		return c.JSON(http.StatusCreated, jobView(job))
	}
}
