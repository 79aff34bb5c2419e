// Package web assembles the echo server the browser extension talks to.
package web

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"thirdcoast.systems/clipstudio/cmd/studio/handlers/api/editor_api"
	"thirdcoast.systems/clipstudio/cmd/studio/handlers/api/export_api"
	"thirdcoast.systems/clipstudio/cmd/studio/handlers/api/session_api"
	"thirdcoast.systems/clipstudio/internal/config"
	"thirdcoast.systems/clipstudio/internal/db"
	"thirdcoast.systems/clipstudio/internal/render"
	"thirdcoast.systems/clipstudio/internal/session"
	"thirdcoast.systems/clipstudio/pkg/encryption"
)

type Webserver struct {
	*echo.Echo
	conf                *config.Config
	dbc                 *db.DB
	encryptionManager   *encryption.Manager
	sessions            *session.Manager
	store               *render.Store
	pool                *render.Pool
	allowedExtensionIDs map[string]struct{}
}

func NewWebserver(conf *config.Config, dbc *db.DB, encryptionManager *encryption.Manager, sessions *session.Manager, store *render.Store, pool *render.Pool) (*Webserver, error) {
	e := echo.New()

	webserver := &Webserver{
		Echo:                e,
		conf:                conf,
		dbc:                 dbc,
		encryptionManager:   encryptionManager,
		sessions:            sessions,
		store:               store,
		pool:                pool,
		allowedExtensionIDs: parseCommaSeparatedSet(conf.ExtensionAllowedIDs),
	}

	if len(webserver.allowedExtensionIDs) == 0 {
		slog.Info("EXTENSION_ALLOWED_IDS not set; extension CORS will be allowed only on localhost/private IP")
	}

	webserver.registerRoutes()
	webserver.setupMiddleware()

	return webserver, nil
}

func parseCommaSeparatedSet(raw string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		v := strings.TrimSpace(part)
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

func (s *Webserver) setupMiddleware() {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit("2M"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Pointer-move and playback-tick routes fire dozens of times a
			// second; logging them drowns everything else.
			switch c.Path() {
			case "/api/sessions/:id/selection/drag/move",
				"/api/sessions/:id/selection/resize/move",
				"/api/sessions/:id/playback/tick",
				"/api/sessions/:id/interpolate",
				"/api/exports/:id/events":
				return true
			default:
				return false
			}
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))
}

func (s *Webserver) registerRoutes() {
	// Health check, unauthenticated; the extension probes it before pairing.
	s.GET("/healthz", s.HandleHealthz)

	apiGroup := s.Group("/api")
	apiGroup.Use(s.extensionCORSMiddleware)

	// Pairing is the only API route reachable without a bearer token, and
	// only from localhost or a private address.
	apiGroup.POST("/extension/pair", s.HandleExtensionPair)

	authGroup := apiGroup.Group("")
	authGroup.Use(s.requireExtensionToken)

	authGroup.POST("/sessions", session_api.HandleCreate(s.sessions))
	authGroup.GET("/sessions/:id", session_api.HandleGet(s.sessions))
	authGroup.DELETE("/sessions/:id", session_api.HandleDelete(s.sessions))

	// Selection: drag notifies live, resize and zoom notify on release.
	authGroup.GET("/sessions/:id/selection", editor_api.HandleSelectionGet(s.sessions))
	authGroup.PUT("/sessions/:id/selection", editor_api.HandleSelectionRestore(s.sessions))
	authGroup.POST("/sessions/:id/canvas", editor_api.HandleCanvasUpdate(s.sessions))
	authGroup.POST("/sessions/:id/selection/drag/begin", editor_api.HandleDragBegin(s.sessions))
	authGroup.POST("/sessions/:id/selection/drag/move", editor_api.HandleDragMove(s.sessions))
	authGroup.POST("/sessions/:id/selection/drag/end", editor_api.HandleInteractionEnd(s.sessions))
	authGroup.POST("/sessions/:id/selection/resize/begin", editor_api.HandleResizeBegin(s.sessions))
	authGroup.POST("/sessions/:id/selection/resize/move", editor_api.HandleResizeMove(s.sessions))
	authGroup.POST("/sessions/:id/selection/resize/end", editor_api.HandleInteractionEnd(s.sessions))
	authGroup.POST("/sessions/:id/selection/zoom", editor_api.HandleZoom(s.sessions))
	authGroup.POST("/sessions/:id/selection/zoom/end", editor_api.HandleInteractionEnd(s.sessions))

	// Playback and recording.
	authGroup.POST("/sessions/:id/playback/play", editor_api.HandlePlay(s.sessions))
	authGroup.POST("/sessions/:id/playback/pause", editor_api.HandlePause(s.sessions))
	authGroup.POST("/sessions/:id/playback/seek", editor_api.HandleSeek(s.sessions))
	authGroup.POST("/sessions/:id/playback/tick", editor_api.HandleTick(s.sessions))
	authGroup.POST("/sessions/:id/recording/start", editor_api.HandleRecordingStart(s.sessions))
	authGroup.POST("/sessions/:id/recording/stop", editor_api.HandleRecordingStop(s.sessions))

	// Keyframe track.
	authGroup.GET("/sessions/:id/keyframes", editor_api.HandleKeyframesIndex(s.sessions))
	authGroup.GET("/sessions/:id/keyframes/stats", editor_api.HandleKeyframesStats(s.sessions))
	authGroup.DELETE("/sessions/:id/keyframes/:ts", editor_api.HandleKeyframeDelete(s.sessions))
	authGroup.DELETE("/sessions/:id/keyframes", editor_api.HandleKeyframesClear(s.sessions))
	authGroup.GET("/sessions/:id/recording-file", editor_api.HandleRecordingFileGet(s.sessions))
	authGroup.PUT("/sessions/:id/recording-file", editor_api.HandleRecordingFilePut(s.sessions))
	authGroup.GET("/sessions/:id/interpolate", editor_api.HandleInterpolate(s.sessions))

	// Trim window.
	authGroup.GET("/sessions/:id/trim", editor_api.HandleTrimGet(s.sessions))
	authGroup.PUT("/sessions/:id/trim/start", editor_api.HandleTrimStart(s.sessions))
	authGroup.PUT("/sessions/:id/trim/end", editor_api.HandleTrimEnd(s.sessions))
	authGroup.POST("/sessions/:id/trim/reset", editor_api.HandleTrimReset(s.sessions))

	// Exports.
	authGroup.POST("/sessions/:id/exports", export_api.HandleCreate(s.sessions, s.store, s.pool, s.conf.DefaultFormat))
	authGroup.GET("/sessions/:id/exports", export_api.HandleIndex(s.sessions, s.store))
	authGroup.GET("/exports/:id", export_api.HandleStatus(s.store))
	authGroup.GET("/exports/:id/events", export_api.HandleEvents(s.store))
	authGroup.DELETE("/exports/:id", export_api.HandleCancel(s.pool))
	authGroup.GET("/exports/:id/download", export_api.HandleDownload(s.store))
	authGroup.GET("/exports/:id/qr", export_api.HandleQR(s.store))
}
