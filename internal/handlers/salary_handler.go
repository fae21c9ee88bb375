package handlers

import (
	"net/http"

	"iwork_backend/internal/middleware"
	"iwork_backend/internal/services"
	"iwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type SalaryHandler struct {
	*BaseHandler
	salaryService    services.SalaryService
	analyticsService services.SalaryAnalyticsService
}

func NewSalaryHandler(base *BaseHandler, salaryService services.SalaryService, analyticsService services.SalaryAnalyticsService) *SalaryHandler {
	return &SalaryHandler{
		BaseHandler:      base,
		salaryService:    salaryService,
		analyticsService: analyticsService,
	}
}

func (h *SalaryHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSalaryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	salary, err := h.salaryService.Create(c.Request.Context(), db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, salary)
}

func (h *SalaryHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSalaryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	salary, err := h.salaryService.Update(c.Request.Context(), db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, salary)
}

func (h *SalaryHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	if err := h.salaryService.Delete(c.Request.Context(), db, userID, c.Param("id"), middleware.IsAdmin(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Salary record deleted"})
}

func (h *SalaryHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	skip, limit := ParsePagination(c)
	db := h.GetDB(c)
	result, err := h.salaryService.ListMine(c.Request.Context(), db, userID, skip, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SalaryHandler) Statistics(c *gin.Context) {
	var req dto.StatisticsRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)
	stats, err := h.analyticsService.Statistics(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *SalaryHandler) Breakdown(c *gin.Context) {
	var req dto.BreakdownRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)
	breakdown, err := h.analyticsService.Breakdown(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *SalaryHandler) Compare(c *gin.Context) {
	var req dto.CompareRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)
	comparison, err := h.analyticsService.Compare(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}
