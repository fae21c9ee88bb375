package handlers

import (
	"net/http"

	"iwork_backend/internal/services"
	"iwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	adminService  services.AdminService
	salaryService services.SalaryService
}

func NewAdminHandler(base *BaseHandler, adminService services.AdminService, salaryService services.SalaryService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   base,
		adminService:  adminService,
		salaryService: salaryService,
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	db := h.GetDB(c)
	dashboard, err := h.adminService.Dashboard(c.Request.Context(), db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *AdminHandler) ListSalaries(c *gin.Context) {
	var filter dto.AdminSalaryFilter
	if !h.BindAndValidate_Query(c, &filter) {
		return
	}
	skip, limit := ParsePagination(c)

	db := h.GetDB(c)
	result, err := h.salaryService.ListAll(c.Request.Context(), db, &filter, skip, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) DuplicateSalaries(c *gin.Context) {
	timeWindowDays := ParseQueryInt(c, "time_window_days", 30)

	db := h.GetDB(c)
	result, err := h.adminService.DuplicateSalaries(c.Request.Context(), db, timeWindowDays)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
