package handlers

import (
	"net/http"

	"iwork_backend/internal/services"
	"iwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	*BaseHandler
	searchService services.SearchService
}

func NewSearchHandler(base *BaseHandler, searchService services.SearchService) *SearchHandler {
	return &SearchHandler{BaseHandler: base, searchService: searchService}
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}
	skip, limit := ParsePagination(c)

	db := h.GetDB(c)
	result, err := h.searchService.Search(c.Request.Context(), db, req.Query, skip, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
