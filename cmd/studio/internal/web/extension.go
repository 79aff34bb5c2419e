package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// extensionTokenKey is the settings row holding the paired bearer token,
// encrypted at rest.
const extensionTokenKey = "extension_token"

// HandleExtensionPair mints the extension bearer token. Pairing is only
// accepted from localhost or a private address; re-pairing replaces the
// previous token, cutting off any other extension install.
func (s *Webserver) HandleExtensionPair(c echo.Context) error {
	if !isLocalOrPrivateRequestHost(c) {
		return echo.NewHTTPError(http.StatusForbidden, "pairing is only allowed from the local machine")
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate token")
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	encrypted, err := s.encryptionManager.EncryptString(token)
	if err != nil {
		slog.Error("failed to encrypt extension token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store token")
	}
	if err := s.dbc.SetSetting(c.Request().Context(), extensionTokenKey, encrypted); err != nil {
		slog.Error("failed to store extension token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store token")
	}

	slog.Info("extension paired", "remote_ip", c.RealIP())
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// requireExtensionToken rejects requests whose bearer token does not match
// the paired one.
func (s *Webserver) requireExtensionToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}
		presented := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if presented == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}

		encrypted, ok, err := s.dbc.GetSetting(c.Request().Context(), extensionTokenKey)
		if err != nil || !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "not paired")
		}
		stored, err := s.encryptionManager.DecryptString(encrypted)
		if err != nil {
			slog.Error("failed to decrypt extension token", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "not paired")
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(stored)) != 1 {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}

		return next(c)
	}
}

// extensionCORSMiddleware adds CORS headers for browser extension requests.
func (s *Webserver) extensionCORSMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		origin := c.Request().Header.Get("Origin")
		allowedOrigin := ""
		localOrPrivate := isLocalOrPrivateRequestHost(c)

		// Chrome/Firefox extensions send an Origin header; some contexts
		// (curl, same-origin) do not.
		if origin != "" {
			if u, err := url.Parse(origin); err == nil {
				if u.Scheme == "chrome-extension" || u.Scheme == "moz-extension" {
					if localOrPrivate {
						allowedOrigin = origin
					} else if _, ok := s.allowedExtensionIDs[u.Host]; ok {
						allowedOrigin = origin
					}
				}
			}
		}

		if allowedOrigin != "" {
			c.Response().Header().Set("Vary", "Origin")
			c.Response().Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			c.Response().Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Response().Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")
			c.Response().Header().Set("Access-Control-Expose-Headers", "Content-Type")
		}

		if c.Request().Method == http.MethodOptions {
			if origin != "" && allowedOrigin == "" {
				return c.NoContent(http.StatusForbidden)
			}
			return c.NoContent(http.StatusNoContent)
		}

		err := next(c)

		// Re-apply CORS headers in case error handling cleared them.
		if allowedOrigin != "" {
			if c.Response().Header().Get("Access-Control-Allow-Origin") == "" {
				c.Response().Header().Set("Vary", "Origin")
				c.Response().Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			}
		}

		return err
	}
}

func isLocalOrPrivateRequestHost(c echo.Context) bool {
	hostHeader := strings.TrimSpace(c.Request().Header.Get("X-Forwarded-Host"))
	if hostHeader == "" {
		hostHeader = strings.TrimSpace(c.Request().Host)
	}
	if hostHeader == "" {
		return false
	}
	// If multiple forwarded hosts are provided, use the first.
	if idx := strings.Index(hostHeader, ","); idx >= 0 {
		hostHeader = strings.TrimSpace(hostHeader[:idx])
	}

	host := hostHeader
	if h, _, err := net.SplitHostPort(hostHeader); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSpace(host))

	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() {
			return true
		}
		if ip4 := ip.To4(); ip4 != nil {
			// RFC1918 + link-local
			switch {
			case ip4[0] == 10:
				return true
			case ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31:
				return true
			case ip4[0] == 192 && ip4[1] == 168:
				return true
			case ip4[0] == 169 && ip4[1] == 254:
				return true
			default:
				return false
			}
		}
		// IPv6: loopback handled above; treat ULA (fc00::/7) and
		// link-local (fe80::/10) as local.
		if len(ip) == net.IPv6len {
			if ip[0]&0xfe == 0xfc {
				return true
			}
			if ip[0] == 0xfe && (ip[1]&0xc0) == 0x80 {
				return true
			}
		}
	}

	return false
}
