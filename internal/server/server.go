package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"docqa/internal/models"
)

// Processor runs the question-answering pipeline for one request.
type Processor interface {
	Process(ctx context.Context, document string, questions []string) (*models.Response, error)
}

type Handler struct {
	pipeline Processor
}

func NewHandler(pipeline Processor) *Handler {
	return &Handler{pipeline: pipeline}
}

type queryRequest struct {
	Documents string   `json:"documents"`
	Questions []string `json:"questions"`
}


// New builds the echo instance with all routes and middleware wired.
func New(handler *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(metricsMiddleware)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		log.Error().Int("status", code).Str("path", c.Request().URL.Path).Err(err).Msg("Request failed")
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]string{"detail": msg})
		}
	}

	e.GET("/health", handler.Health)
	e.GET("/system/info", handler.SystemInfo)
	e.POST("/hackrx/run", handler.Run)
	e.POST("/hackrx/run/enhanced", handler.RunEnhanced)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"system":    models.SystemName,
		"version":   models.SystemVersion,
	})
}

// Run answers a batch of questions about one document. An unrecovered
// pipeline failure surfaces as a 500 with a descriptive detail message and
// nothing else; internals never leak to the caller.
func (h *Handler) Run(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Documents == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "documents is required")
	}
	if len(req.Questions) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one question is required")
	}

	resp, err := h.pipeline.Process(c.Request().Context(), req.Documents, req.Questions)
	if err != nil {
		log.Error().Err(err).Str("document", req.Documents).Msg("Pipeline failure")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"detail": fmt.Sprintf("Processing error: %v", err),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// RunEnhanced accepts the extended request shape. Its extra fields
// (enable_caching, response_format) have no effect: caching is always on and
// there is only one response format, so it behaves exactly like Run.
func (h *Handler) RunEnhanced(c echo.Context) error {
	return h.Run(c)
}
