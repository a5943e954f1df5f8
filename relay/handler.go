package relay

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/xiaot623/embeddemo/domain"
)

// Handler handles session relay HTTP requests.
type Handler struct {
	client *Client
}

// NewHandler creates a new relay handler.
func NewHandler(client *Client) *Handler {
	return &Handler{
		client: client,
	}
}

// RegisterRoutes registers relay routes.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST(GenerateSessionPath, h.GenerateSession)
	e.GET("/health", h.Health)
}

// GenerateSession forwards the request body to the upstream service and
// mirrors its status, body and content type.
// POST /api/v1/embed/generate-session
func (h *Handler) GenerateSession(c echo.Context) error {
	ctx := c.Request().Context()
	requestID := "req_" + uuid.New().String()[:8]

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		c.Logger().Errorf("[%s] failed to read request body: %v", requestID, err)
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: "failed to generate session"})
	}

	resp, err := h.client.GenerateSession(ctx, body)
	if err != nil {
		c.Logger().Errorf("[%s] upstream request failed: %v", requestID, err)
		return c.JSON(http.StatusInternalServerError, domain.ErrorResponse{Error: "failed to generate session"})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Logger().Warnf("[%s] upstream returned status %d", requestID, resp.StatusCode)
	}

	if resp.ContentType != "" {
		return c.Blob(resp.StatusCode, resp.ContentType, resp.Body)
	}
	c.Response().WriteHeader(resp.StatusCode)
	_, err = c.Response().Write(resp.Body)
	return err
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
