package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/roster", s.rosterHandler)
		api.POST("/card/render", s.renderCardHandler)
		api.POST("/cards/render", s.renderBatchHandler)
		api.GET("/qr", s.qrHandler)
	}
}
