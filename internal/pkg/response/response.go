package response

import "github.com/gin-gonic/gin"

// Error writes the standard error envelope. Success envelopes are shaped
// per endpoint (file, files, credits, ...) and built inline in handlers.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
