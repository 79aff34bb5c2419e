package export_api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/render"
)

// HandleEvents streams job status over SSE until the job reaches a terminal
// state or the client disconnects. Events are only emitted when the status
// or progress actually changes.
func HandleEvents(store *render.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		ctx := c.Request().Context()

		if _, err := store.Get(ctx, id); err != nil {
			if errors.Is(err, render.ErrJobNotFound) {
				return common.ErrNotFound("export not found")
			}
			return common.ErrInternal(err.Error())
		}

		w := c.Response().Writer
		flusher, ok := w.(http.Flusher)
		if !ok {
			return common.ErrInternal("streaming unsupported")
		}
		common.SetSSEHeaders(c)
		c.Response().WriteHeader(http.StatusOK)

		_, _ = fmt.Fprintf(w, ": connected\n\n")
		flusher.Flush()

		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		lastFingerprint := ""
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				job, err := store.Get(ctx, id)
				if err != nil {
					return nil
				}

				fingerprint := fmt.Sprintf("%s|%d", job.Status, job.Progress)
				if fingerprint != lastFingerprint {
					lastFingerprint = fingerprint
					if err := common.WriteSSEEvent(w, flusher, "status", jobView(job)); err != nil {
						return nil
					}
				}

				if job.Done() {
					return nil
				}
			}
		}
	}
}
