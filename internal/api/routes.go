package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, s *Server) {
	r.GET("/", s.index)

	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.GET("/qr", s.qr)

		api.POST("/sessions", s.createSession)
		api.GET("/sessions/:id", s.getSession)
		api.DELETE("/sessions/:id", s.deleteSession)
		api.PUT("/sessions/:id/sides/:side", s.selectFile)
		api.DELETE("/sessions/:id/sides/:side", s.clearFile)
		api.GET("/sessions/:id/sides/:side/preview", s.preview)
		api.POST("/sessions/:id/merge", s.mergeImages)
	}
}
