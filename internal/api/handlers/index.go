package handlers

import (
	"net/http"

	"elektron/internal/web"

	"github.com/gin-gonic/gin"
)

// Index handles GET /. The page is a fixed asset; everything dynamic happens
// client-side against /prices.
func Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.Index)
}
