package handlers

import (
	"net/http"

	"iwork_backend/internal/integrations"

	"github.com/gin-gonic/gin"
)

type IntegrationsHandler struct {
	*BaseHandler
	stocks *integrations.StockClient
}

func NewIntegrationsHandler(base *BaseHandler, stocks *integrations.StockClient) *IntegrationsHandler {
	return &IntegrationsHandler{BaseHandler: base, stocks: stocks}
}

func (h *IntegrationsHandler) MarketData(c *gin.Context) {
	quote, err := h.stocks.Quote(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
