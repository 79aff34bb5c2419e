package export_api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/render"
	"thirdcoast.systems/clipstudio/internal/session"
)

// HandleIndex lists a session's export jobs, newest first.
func HandleIndex(sessions *session.Manager, store *render.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := common.RequireSession(c, sessions)
		if err != nil {
			return err
		}
		jobs, err := store.ListBySession(c.Request().Context(), s.ID)
		if err != nil {
			return common.ErrInternal(err.Error())
		}
		return c.JSON(http.StatusOK, jobViews(jobs))
	}
}
