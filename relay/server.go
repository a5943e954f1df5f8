package relay

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/xiaot623/embeddemo/config"
)

// MaxRequestBody caps session request bodies.
const MaxRequestBody = "64K"

// NewServer creates and configures the client-facing relay server.
func NewServer(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(parseLogLevel(cfg.LogLevel))

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(MaxRequestBody))

	client := NewClient(cfg.UpstreamURL, cfg.APIKey, cfg.UpstreamTimeout)
	NewHandler(client).RegisterRoutes(e)

	return e
}

// parseLogLevel maps LOG_LEVEL to the echo logger level. Unknown values
// fall back to info.
func parseLogLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off", "none":
		return log.OFF
	default:
		return log.INFO
	}
}
