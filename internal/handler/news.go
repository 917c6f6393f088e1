package handler

import (
	"errors"
	"net/http"

	"coinpulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// AnalyzeNews godoc
// @Summary      Analyze news sentiment for a coin
// @Description  Fetches recent news from several free sources, scores each article by keyword sentiment and returns an aggregate trading signal
// @Tags         news
// @Accept       json
// @Produce      json
// @Param        request  body      domain.Asset  true  "Coin to analyze"
// @Success      200      {object}  domain.AggregateReport
// @Failure      400      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/news/analyze [post]
func (h *Handler) AnalyzeNews(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze-news")
	defer span.End()

	var asset domain.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	asset = asset.Normalize()
	if err := asset.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.String("symbol", asset.Symbol))

	report, err := h.news.AnalyzeCoinNews(ctx, asset)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrInvalidAsset) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
