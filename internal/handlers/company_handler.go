package handlers

import (
	"net/http"

	"iwork_backend/internal/repositories"
	"iwork_backend/internal/services"
	"iwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
	reviewService  services.ReviewService
	salaryService  services.SalaryService
}

func NewCompanyHandler(
	base *BaseHandler,
	companyService services.CompanyService,
	reviewService services.ReviewService,
	salaryService services.SalaryService,
) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
		reviewService:  reviewService,
		salaryService:  salaryService,
	}
}

func (h *CompanyHandler) List(c *gin.Context) {
	skip, limit := ParsePagination(c)
	filter := repositories.CompanyFilter{
		Name:     c.Query("name"),
		Industry: c.Query("industry"),
		Location: c.Query("location"),
	}

	db := h.GetDB(c)
	result, err := h.companyService.List(c.Request.Context(), db, filter, skip, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CompanyHandler) GetDetail(c *gin.Context) {
	db := h.GetDB(c)
	detail, err := h.companyService.GetDetail(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *CompanyHandler) Create(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	company, err := h.companyService.Create(c.Request.Context(), db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	company, err := h.companyService.Update(c.Request.Context(), db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	db := h.GetDB(c)
	if err := h.companyService.Delete(c.Request.Context(), db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}

// ListReviews serves the public page of verified reviews for a company.
func (h *CompanyHandler) ListReviews(c *gin.Context) {
	skip, limit := ParsePagination(c)
	includeFiles := c.Query("include_files") == "true"

	db := h.GetDB(c)
	result, err := h.reviewService.ListForCompany(c.Request.Context(), db, c.Param("id"), skip, limit, includeFiles)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CompanyHandler) ListSalaries(c *gin.Context) {
	skip, limit := ParsePagination(c)

	db := h.GetDB(c)
	result, err := h.salaryService.ListForCompany(c.Request.Context(), db, c.Param("id"), skip, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CompanyHandler) GetTaxData(c *gin.Context) {
	db := h.GetDB(c)
	data, err := h.companyService.TaxData(c.Request.Context(), db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}
