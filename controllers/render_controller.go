package controllers

import (
	"net/http"

	"dbconnmanager/pkg/logger"
	"dbconnmanager/services"
	"dbconnmanager/utils"

	"github.com/gin-gonic/gin"
)

const htmlContentType = "text/html; charset=utf-8"

var querySrv services.QueryService
var queryDefaultLimit = services.DefaultQueryLimit

// SetQueryService initializes the query runner instance and the limit used when a directive has none.
func SetQueryService(s services.QueryService, defaultLimit int) {
	querySrv = s
	queryDefaultLimit = defaultLimit
}

// RenderContentRequest carries page content containing query directives.
type RenderContentRequest struct {
	Content string `json:"content"`
}

// RenderQuery renders one query directive
// @Summary Render query directive
// @Description Runs one read-only query directive against a published connection and returns an HTML fragment. Failures are returned as a short escaped message.
// @Tags Render
// @Produce html
// @Param id query int true "Connection ID"
// @Param query query string false "SELECT statement (MySQL)"
// @Param collection query string false "Collection (MongoDB)"
// @Param filter query string false "JSON filter (MongoDB)" default({})
// @Param projection query string false "JSON projection (MongoDB)" default({})
// @Param limit query int false "Row limit, 0 for unbounded" default(20)
// @Param template query string false "table or json (MySQL)" default(table)
// @Success 200 {string} string "HTML fragment"
// @Router /render/query [get]
func renderQuery(c *gin.Context) {
	attrs := map[string]string{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			attrs[key] = values[0]
		}
	}
	directive := services.NewDirective(attrs, "", queryDefaultLimit)
	logger.Debugf("Rendering query directive for connection id=%d", directive.ID)

	c.Data(http.StatusOK, htmlContentType, []byte(querySrv.Render(c.Request.Context(), directive)))
}

// RenderContent expands every query directive in page content
// @Summary Render page content
// @Description Replaces each [external_db_query] directive in the content with its rendered HTML fragment
// @Tags Render
// @Accept json
// @Produce html
// @Param content body RenderContentRequest true "Page content"
// @Success 200 {string} string "Expanded HTML"
// @Failure 400 {object} StandardErrorResponse "Invalid request body"
// @Router /render [post]
func renderContent(c *gin.Context) {
	var req RenderContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(querySrv.RenderContent(c.Request.Context(), req.Content)))
}

// RegisterRenderRoutes registers the public rendering endpoints.
func RegisterRenderRoutes(rg *gin.RouterGroup) {
	render := rg.Group("/render")
	{
		render.GET("/query", renderQuery)
		render.POST("", renderContent)
	}
}

// health reports liveness. It is served outside /api and is not part of the API docs.
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RegisterHealthRoutes registers the liveness endpoint.
func RegisterHealthRoutes(r gin.IRoutes) {
	r.GET("/healthz", health)
}
