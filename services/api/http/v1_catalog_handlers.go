package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soilbgc/alpine-soc-viewer/services/api/catalog"
)

// handleV1ListCatchments returns all catchments with their plots and sensors
// GET /api/v1/catchments
func (s *Server) handleV1ListCatchments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": s.areas,
		"meta": gin.H{
			"count": len(s.areas),
		},
	})
}

// handleV1GetCatchment returns details for a specific catchment
// GET /api/v1/catchments/:id
func (s *Server) handleV1GetCatchment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catchment id"})
		return
	}

	for i := range s.areas {
		if s.areas[i].ID == id {
			c.JSON(http.StatusOK, gin.H{"data": s.areas[i]})
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "catchment not found"})
}

// handleV1SensorSeries returns the full time series for one sensor and
// quantity, fetched from upstream on first request and cached in memory
// GET /api/v1/sensors/:id/series?quantity=Temperature|Moisture
func (s *Server) handleV1SensorSeries(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sensor id"})
		return
	}

	quantity := c.Query("quantity")
	if quantity != "Temperature" && quantity != "Moisture" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be Temperature or Moisture"})
		return
	}

	key := catalog.SeriesKey{SensorID: id, Quantity: quantity}
	if series, ok := s.series.Get(key); ok {
		c.JSON(http.StatusOK, gin.H{
			"data": series,
			"meta": gin.H{"cached": true},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	series, err := s.catalog.FetchSensorSeries(ctx, id, quantity)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	s.series.Put(key, series)

	c.JSON(http.StatusOK, gin.H{
		"data": series,
		"meta": gin.H{"cached": false},
	})
}
