package handlers

import (
	"net/http"

	"elektron/internal/chart"
	"elektron/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PricesHandler handles spot price requests.
type PricesHandler struct {
	client *data.SpotPriceClient
	logger *zap.Logger
}

// NewPricesHandler creates a prices handler backed by the given client.
func NewPricesHandler(client *data.SpotPriceClient) *PricesHandler {
	return &PricesHandler{
		client: client,
		logger: zap.L(),
	}
}

// GetPrices handles GET /prices. Upstream failures of any kind collapse to a
// 500 with a plain-text body; the browser treats them all the same.
func (h *PricesHandler) GetPrices(c *gin.Context) {
	records, err := h.client.FetchToday(c.Request.Context())
	if err != nil {
		h.logger.Error("fetching spot prices failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Error: %v", err)
		return
	}

	c.JSON(http.StatusOK, chart.FromRecords(records))
}
