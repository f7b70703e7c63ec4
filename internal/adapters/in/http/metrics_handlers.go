package http

import (
	"fmt"
	"net/http"

	"sellerconsole/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

func (s *Server) metricsQuery(c echo.Context) (queries.ComputeMetricsQuery, error) {
	sellerID, err := pathUUID(c, "sellerId")
	if err != nil {
		return queries.ComputeMetricsQuery{}, err
	}
	days, err := windowDays(c)
	if err != nil {
		return queries.ComputeMetricsQuery{}, err
	}
	return queries.NewComputeMetricsQuery(sellerID, days)
}

// ComputeMetrics handles GET /api/v1/sellers/:sellerId/metrics?windowDays=.
func (s *Server) ComputeMetrics(c echo.Context) error {
	query, err := s.metricsQuery(c)
	if err != nil {
		return s.writeError(c, err)
	}

	snapshot, err := s.handlers.ComputeMetrics.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, snapshot)
}

// ExportMetrics handles GET /api/v1/sellers/:sellerId/metrics/export?windowDays=.
func (s *Server) ExportMetrics(c echo.Context) error {
	query, err := s.metricsQuery(c)
	if err != nil {
		return s.writeError(c, err)
	}

	exported, err := s.handlers.ExportMetrics.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", exported.FileName))
	return c.Blob(http.StatusOK, exported.ContentType, exported.Content)
}
