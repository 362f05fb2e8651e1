package file

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the file endpoints under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	files := r.Group("/files")
	{
		files.POST("/upload", h.Upload)
		files.GET("", h.List)
		files.GET("/credits/balance", h.Credits)
		files.GET("/:id", h.Get)
		files.GET("/:id/history", h.History)
	}
}
