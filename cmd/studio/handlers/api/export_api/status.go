package export_api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/render"
)

// HandleStatus returns the current state of one export job.
func HandleStatus(store *render.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		job, err := store.Get(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, render.ErrJobNotFound) {
				return common.ErrNotFound("export not found")
			}
			return common.ErrInternal(err.Error())
		}
		return c.JSON(http.StatusOK, jobView(job))
	}
}
