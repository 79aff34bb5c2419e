package export_api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/render"
)

// HandleCancel cancels a queued or running export. A job already in a
// terminal state is a 409.
func HandleCancel(pool *render.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		err := pool.Cancel(c.Request().Context(), c.Param("id"))
		switch {
		case err == nil:
			return c.NoContent(http.StatusNoContent)
		case errors.Is(err, render.ErrJobNotFound):
			return common.ErrNotFound("export not found")
		case errors.Is(err, render.ErrInvalidTransition):
			return common.ErrConflict("export already finished")
		default:
			return common.ErrInternal(err.Error())
		}
	}
}
