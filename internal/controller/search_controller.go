package controller

import (
	"strings"

	"studyset_backend/internal/service"
	"studyset_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	Service *service.SearchService
}

func NewSearchController(svc *service.SearchService) *SearchController {
	return &SearchController{Service: svc}
}

// @Summary Search courses and practice tests by keyword
// @Tags search
// @Produce json
// @Param q query string true "keyword"
// @Param type query string false "course | test | all" default(all)
// @Param cursor query string false "id cursor for pagination"
// @Success 200 {object} util.Response
// @Router /api/search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	keyword := strings.TrimSpace(ctx.Query("q"))
	if keyword == "" {
		util.BadRequest(ctx, "q must not be empty")
		return
	}

	searchType := ctx.DefaultQuery("type", "all")
	switch searchType {
	case "all", "course", "test":
	default:
		util.BadRequest(ctx, "type must be one of all, course, test")
		return
	}

	result, err := c.Service.SearchByKeyword(ctx.Request.Context(), keyword, searchType, ctx.Query("cursor"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary Random course and practice test picks for the landing page
// @Tags search
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/picks [get]
func (c *SearchController) RandomPicks(ctx *gin.Context) {
	result, err := c.Service.RandomPicks()
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
