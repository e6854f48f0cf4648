// Package http wires the gin API surface around the scrape + analyze core.
package http

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/propscan/propscan/internal/business/analysis"
	"github.com/propscan/propscan/internal/business/scraper"
	"github.com/propscan/propscan/pkg/money"
)

// Router holds the handlers' dependencies.
type Router struct {
	scraper *scraper.Scraper
}

// NewRouter builds the gin engine with all API routes attached.
func NewRouter(s *scraper.Scraper) *gin.Engine {
	r := &Router{scraper: s}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/params", r.listParams)
		api.POST("/analyze", r.analyzeProperty)
		api.POST("/search", r.searchListings)
		api.GET("/search/export", r.exportSearch)
	}

	return router
}

func (r *Router) listParams(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"params": analysis.Registry})
}

type analyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

func (r *Router) analyzeProperty(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := r.scraper.ScrapeProperty(c.Request.Context(), req.URL)
	if !res.OK() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors":   res.ErrorStrings(),
			"warnings": res.Warnings,
		})
		return
	}

	result, err := analysis.Run(res.Property, analysis.Resolve(res.Property))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    err.Error(),
			"warnings": res.Warnings,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": result, "warnings": res.Warnings})
}

type searchRequest struct {
	URL   string `json:"url" binding:"required"`
	Count int    `json:"count"`
}

func (r *Router) searchListings(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Count <= 0 {
		req.Count = 10
	}

	results, err := r.scraper.ScrapeListings(c.Request.Context(), req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	analyses, excluded := analysis.AnalyzeBatch(results)
	analysis.RankByCashFlowPerUnit(analyses)

	c.JSON(http.StatusOK, gin.H{
		"runId":    uuid.NewString(),
		"analyzed": len(analyses),
		"excluded": excluded,
		"results":  analysis.TopN(analyses, req.Count),
	})
}

func (r *Router) exportSearch(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}
	count, err := strconv.Atoi(c.DefaultQuery("count", "10"))
	if err != nil || count <= 0 {
		count = 10
	}

	results, err := r.scraper.ScrapeListings(c.Request.Context(), url)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	analyses, _ := analysis.AnalyzeBatch(results)
	analysis.RankByCashFlowPerUnit(analyses)
	top := analysis.TopN(analyses, count)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="analyses.csv"`)

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	_ = w.Write([]string{"address", "url", "units", "asking_price", "cash_flow_per_unit", "cocr", "cap_rate", "debt_coverage"})
	for _, a := range top {
		_ = w.Write([]string{
			a.Property.DisplayName(),
			a.Property.URL,
			strconv.Itoa(a.Property.NumUnits),
			money.Format(a.Property.Price),
			money.Format(a.CashFlowPerUnit),
			money.FormatPercent(a.COCR),
			money.FormatPercent(a.CapRate),
			fmt.Sprintf("%.2f", a.DebtCoverage),
		})
	}
}
