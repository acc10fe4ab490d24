package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soilbgc/alpine-soc-viewer/services/api/layers"
)

// OverlayPath formats the serving path of a raster overlay. It is handed to
// the composer so snapshots carry resolvable overlay URLs.
func OverlayPath(id string) string {
	return "/api/v1/map/overlays/" + id
}

// handleV1MapView applies a new view state and returns the resulting
// composed map document
// POST /api/v1/map/view
func (s *Server) handleV1MapView(c *gin.Context) {
	var in layers.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid view state: " + err.Error()})
		return
	}

	s.composer.Apply(in)

	c.JSON(http.StatusOK, gin.H{"data": s.composer.Snapshot()})
}

// handleV1MapState returns the current composed map document without
// changing the view
// GET /api/v1/map/state
func (s *Server) handleV1MapState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.composer.Snapshot()})
}

// handleV1MapOverlay serves the rendered PNG of an attached raster overlay
// GET /api/v1/map/overlays/:id
func (s *Server) handleV1MapOverlay(c *gin.Context) {
	id := c.Param("id")
	ov, ok := s.composer.Map().Raster(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "overlay not found"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", ov.PNG)
}

// handleV1AreaClick forwards a boundary/tooltip click to the composer and
// returns the resulting map document
// POST /api/v1/map/events/area-click
func (s *Server) handleV1AreaClick(c *gin.Context) {
	var body struct {
		AreaID int `json:"area_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.AreaID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "area_id is required"})
		return
	}

	s.composer.ClickArea(body.AreaID)

	c.JSON(http.StatusOK, gin.H{"data": s.composer.Snapshot()})
}

// handleV1SensorClick forwards a sensor marker click to the composer; the
// client follows up on the series endpoint for the popup chart
// POST /api/v1/map/events/sensor-click
func (s *Server) handleV1SensorClick(c *gin.Context) {
	var body struct {
		SensorID int `json:"sensor_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SensorID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sensor_id is required"})
		return
	}

	s.composer.ClickSensor(body.SensorID)

	c.JSON(http.StatusOK, gin.H{"data": s.composer.Snapshot()})
}

// handleV1PopupClose forwards a closed sensor popup to the composer
// POST /api/v1/map/events/popup-close
func (s *Server) handleV1PopupClose(c *gin.Context) {
	s.composer.CloseSensorPopup()

	c.JSON(http.StatusOK, gin.H{"data": s.composer.Snapshot()})
}
