package http

// registerV1Routes sets up the v1 API structure.
// Groups: /api/v1/catchments, /api/v1/sensors, /api/v1/map
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Catchment endpoints - area metadata, plots and sensors
	catchments := v1.Group("/catchments")
	{
		catchments.GET("", s.handleV1ListCatchments)
		catchments.GET("/:id", s.handleV1GetCatchment)
	}

	// Sensor endpoints - time series for popups and charts
	sensors := v1.Group("/sensors")
	{
		sensors.GET("/:id/series", s.handleV1SensorSeries)
	}

	// Map endpoints - composed view state, overlay images and click events
	mapGroup := v1.Group("/map")
	{
		mapGroup.POST("/view", s.handleV1MapView)
		mapGroup.GET("/state", s.handleV1MapState)
		mapGroup.GET("/overlays/:id", s.handleV1MapOverlay)
		mapGroup.POST("/events/area-click", s.handleV1AreaClick)
		mapGroup.POST("/events/sensor-click", s.handleV1SensorClick)
		mapGroup.POST("/events/popup-close", s.handleV1PopupClose)
	}
}
