package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/spendwise/expense-api/internal/core/ports"
)

// InsightsHandler serves spending aggregates.
type InsightsHandler struct {
	insights ports.InsightsService
}

func NewInsightsHandler(insights ports.InsightsService) *InsightsHandler {
	return &InsightsHandler{insights: insights}
}

type categoryBreakdownResponse struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type insightsResponse struct {
	Year       int                         `json:"year,omitempty"`
	Month      int                         `json:"month,omitempty"`
	Budget     float64                     `json:"budget"`
	Spent      float64                     `json:"spent"`
	Remaining  float64                     `json:"remaining"`
	Categories []categoryBreakdownResponse `json:"categories"`
}

// Summary handles GET /v1/insights. Without year/month the aggregation is
// all-time.
//
// @Summary      Spending insights
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Param        year   query     int  false  "Calendar year"
// @Param        month  query     int  false  "Calendar month (1-12)"
// @Success      200    {object}  insightsResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/insights [get]
func (h *InsightsHandler) Summary(c echo.Context) error {
	accountID, err := ctxAccount(c)
	if err != nil {
		return err
	}

	year, _ := strconv.Atoi(c.QueryParam("year"))
	month, _ := strconv.Atoi(c.QueryParam("month"))

	summary, err := h.insights.Summary(c.Request().Context(), accountID, year, month)
	if err != nil {
		return err
	}

	rows := make([]categoryBreakdownResponse, len(summary.Categories))
	for i, row := range summary.Categories {
		rows[i] = categoryBreakdownResponse{
			Category:   string(row.Category),
			Total:      row.Total,
			Count:      row.Count,
			Percentage: row.Percentage,
		}
	}
	return c.JSON(http.StatusOK, insightsResponse{
		Year:       summary.Year,
		Month:      summary.Month,
		Budget:     summary.Budget,
		Spent:      summary.Spent,
		Remaining:  summary.Remaining,
		Categories: rows,
	})
}
