package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"ride-insights/internal/catalog"
	"ride-insights/internal/export"
	"ride-insights/internal/http/middleware"
	"ride-insights/internal/model"
	"ride-insights/internal/repository"
	"ride-insights/internal/service"
)

type ReportRunner interface {
	List(principal model.Principal) []model.ReportInfo
	Run(ctx context.Context, principal model.Principal, name string) (model.Table, error)
}

type Handler struct {
	reports ReportRunner
	log     zerolog.Logger
}

func NewHandler(reports ReportRunner, log zerolog.Logger) *Handler {
	return &Handler{reports: reports, log: log}
}

func (h *Handler) Register(r *gin.Engine, protect ...gin.HandlerFunc) {
	r.GET("/health", h.health)

	protected := r.Group("/reports")
	protected.Use(protect...)

	protected.GET("", h.listReports)
	protected.GET("/:name", h.getReport)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, successResponse(gin.H{"status": "ok"}))
}

func (h *Handler) listReports(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	c.JSON(http.StatusOK, successResponse(h.reports.List(principal)))
}

type reportResponse struct {
	Name    string           `json:"name"`
	Title   string           `json:"title"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Skipped int              `json:"skipped"`
}

func (h *Handler) getReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	format, err := export.ParseFormat(strings.ToLower(strings.TrimSpace(c.Query("format"))))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	table, err := h.reports.Run(c.Request.Context(), principal, c.Param("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if format == export.FormatCSV {
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, table.Name))
		c.Status(http.StatusOK)
		if err := export.WriteCSV(c.Writer, table); err != nil {
			h.log.Error().Err(err).Str("report", table.Name).Msg("csv stream failed")
		}
		return
	}

	c.JSON(http.StatusOK, successResponse(reportResponse{
		Name:    table.Name,
		Title:   table.Title,
		Columns: table.Columns,
		Rows:    table.Records(),
		Skipped: table.Skipped,
	}))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, catalog.ErrUnknownReport):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, repository.ErrSchemaMismatch):
		h.log.Error().Err(err).Str("request_id", middleware.RequestID(c)).Msg("store schema mismatch")
		c.JSON(http.StatusServiceUnavailable, errorResponse("report store is not ready"))
	default:
		h.log.Error().Err(err).Str("request_id", middleware.RequestID(c)).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
