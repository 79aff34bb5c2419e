package export_api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/common"
	"thirdcoast.systems/clipstudio/internal/render"
)

// HandleQR renders a QR code pointing at a finished clip, for sending it to
// a phone. The published URL is preferred; otherwise the code carries the
// service's own download URL, which only works on the same network.
func HandleQR(store *render.Store) echo.HandlerFunc {
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

		target := job.PublishedURL
		if target == "" {
			scheme := "http"
			if c.Request().TLS != nil {
				scheme = "https"
			}
			target = scheme + "://" + c.Request().Host + "/api/exports/" + job.ID + "/download"
		}

		png, err := qrcode.Encode(target, qrcode.Medium, 256)
		if err != nil {
			return common.ErrInternal("failed to render qr code")
		}
		return c.Blob(http.StatusOK, "image/png", png)
	}
}
