package handler

import (
	"errors"
	"net/http"
	"strconv"

	"coinpulse/internal/provider"
	"coinpulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetCoins godoc
// @Summary      List top coins by market cap
// @Description  Returns market data for the top coins with a price-based signal for each
// @Tags         coins
// @Produce      json
// @Param        limit  query  int  false  "Number of coins (1-250)"  default(50)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/coins [get]
func (h *Handler) GetCoins(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-coins")
	defer span.End()

	limit := service.DefaultCoinLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > service.MaxCoinLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 250"})
			return
		}
		limit = n
	}
	span.SetAttributes(attribute.Int("limit", limit))

	coins, err := h.market.TopCoins(ctx, limit)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coins": coins})
}

// SearchCoins godoc
// @Summary      Search coins
// @Description  Finds coins by name or symbol so a caller can pick the pair to analyze
// @Tags         coins
// @Produce      json
// @Param        q  query  string  true  "Name or symbol, at least 2 characters"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/coins/search [get]
func (h *Handler) SearchCoins(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.search-coins")
	defer span.End()

	query := c.Query("q")
	span.SetAttributes(attribute.String("query", query))

	results, err := h.market.Search(ctx, query)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, service.ErrSearchQueryTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"coins": results})
}

// GetCoin godoc
// @Summary      Get a single coin
// @Description  Returns detailed market data and the price-based signal for one coin
// @Tags         coins
// @Produce      json
// @Param        id  path  string  true  "CoinGecko coin id (e.g., bitcoin)"
// @Success      200  {object}  service.AssessedCoinDetail
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/coins/{id} [get]
func (h *Handler) GetCoin(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-coin")
	defer span.End()

	id := c.Param("id")
	span.SetAttributes(attribute.String("coin.id", id))

	detail, err := h.market.CoinDetail(ctx, id)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, provider.ErrCoinNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coin not found: " + id})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}
