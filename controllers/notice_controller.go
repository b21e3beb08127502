package controllers

import (
	"net/http"

	"dbconnmanager/services/notice"
	"dbconnmanager/utils"

	"github.com/gin-gonic/gin"
)

var noticeSrv notice.NoticeService

// SetNoticeService initializes the notice queue instance.
func SetNoticeService(s notice.NoticeService) {
	noticeSrv = s
}

// ConsumeNotices returns and clears the caller's pending notices
// @Summary Consume notices
// @Description Returns the notices queued for the authenticated user; each notice is delivered once
// @Tags Notices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} NoticeListResponse "Pending notices"
// @Failure 401 {object} StandardErrorResponse "Unauthorized"
// @Router /notices [get]
func consumeNotices(c *gin.Context) {
	utils.JSONResponse(c, http.StatusOK, gin.H{
		"success": true,
		"data":    noticeSrv.Consume(utils.CurrentUser(c)),
	})
}

// RegisterNoticeRoutes registers the notice endpoint.
func RegisterNoticeRoutes(rg *gin.RouterGroup) {
	rg.GET("/notices", consumeNotices)
}
