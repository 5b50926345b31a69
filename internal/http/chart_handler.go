package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bazi-engine/internal/domain"
	"bazi-engine/internal/fixtures"
	"bazi-engine/internal/service"
)

const maxBatchCharts = 100

// ChartHandler expone el análisis de cartas.
type ChartHandler struct {
	logger   *zap.Logger
	charts   *service.ChartService
	quota    service.ChartQuota
	parallel int
}

// NewChartHandler acepta quota nil: sin Redis no hay límite.
func NewChartHandler(logger *zap.Logger, charts *service.ChartService, quota service.ChartQuota, parallel int) *ChartHandler {
	if parallel <= 0 {
		parallel = 1
	}
	return &ChartHandler{
		logger:   logger,
		charts:   charts,
		quota:    quota,
		parallel: parallel,
	}
}

// reserve descuenta n cartas de la cuota del cliente. Si no alcanza responde 429 y
// devuelve false. Un error de Redis deja pasar la petición.
func (h *ChartHandler) reserve(c *gin.Context, n int) bool {
	if h.quota == nil {
		return true
	}
	key := clientKey(c)
	d, err := h.quota.Reserve(c.Request.Context(), key, n)
	if err != nil {
		h.logger.Warn("chart quota unavailable", zap.String("client", key), zap.Error(err))
		return true
	}
	c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	if d.Allowed {
		return true
	}
	c.Header("Retry-After", strconv.Itoa(int(d.ResetIn.Seconds())))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":     "chart quota exceeded",
		"requested": n,
		"remaining": d.Remaining,
	})
	return false
}

// chartRequest acepta la carta como texto ("丁卯 壬寅 乙亥 辛巳") o como pilares.
// Con pilares, los troncos ocultos omitidos se completan con la tabla estándar.
type chartRequest struct {
	Pillars string        `json:"pillars"`
	Chart   *domain.Chart `json:"chart"`
}

func (r chartRequest) toChart() (domain.Chart, error) {
	switch {
	case r.Pillars != "":
		return domain.ParseChart(r.Pillars)
	case r.Chart != nil:
		return r.Chart.FillHidden(), nil
	default:
		return domain.Chart{}, fmt.Errorf("%w: chart or pillars required", domain.ErrMalformedChart)
	}
}

// Analyze maneja POST /v1/charts/analyze.
func (h *ChartHandler) Analyze(c *gin.Context) {
	var req chartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analyze request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !h.reserve(c, 1) {
		return
	}

	chart, err := req.toChart()
	if err == nil {
		var rep service.Report
		rep, err = h.charts.Analyze(c.Request.Context(), chart)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"report": rep})
			return
		}
	}
	if errors.Is(err, domain.ErrMalformedChart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("analyze chart failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "could not analyze chart"})
}

type batchItem struct {
	Index  int             `json:"index"`
	Report *service.Report `json:"report,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Batch maneja POST /v1/charts/batch. Cada carta falla por separado y cada una
// consume una unidad de la cuota.
func (h *ChartHandler) Batch(c *gin.Context) {
	var req struct {
		Charts []chartRequest `json:"charts" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.Charts) > maxBatchCharts {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("at most %d charts per batch", maxBatchCharts)})
		return
	}
	if !h.reserve(c, len(req.Charts)) {
		return
	}

	charts := make([]domain.Chart, len(req.Charts))
	parseErrs := make([]error, len(req.Charts))
	for i, r := range req.Charts {
		charts[i], parseErrs[i] = r.toChart()
	}

	results, err := h.charts.AnalyzeBatch(c.Request.Context(), charts, h.parallel)
	if err != nil {
		h.logger.Error("batch analyze failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not analyze batch"})
		return
	}

	items := make([]batchItem, len(results))
	failed := 0
	for i, r := range results {
		items[i] = batchItem{Index: r.Index, Report: r.Report}
		if parseErrs[i] != nil {
			r.Err = parseErrs[i]
			items[i].Report = nil
		}
		if r.Err != nil {
			items[i].Error = r.Err.Error()
			failed++
		}
	}
	c.JSON(http.StatusOK, gin.H{"results": items, "failed": failed})
}

// Fixtures maneja GET /v1/fixtures.
func (h *ChartHandler) Fixtures(c *gin.Context) {
	suites, err := fixtures.LoadAll()
	if err != nil {
		h.logger.Error("load fixtures failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load fixtures"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"suites": suites})
}

// Health maneja GET /healthz.
func (h *ChartHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
