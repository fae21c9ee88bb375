package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"iwork_backend/internal/models"
	"iwork_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDashboard(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Dashboard Co")
	helpers.CreateVerifiedReview(t, tx, user.ID, company.ID, 4)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var dashboard struct {
		TotalUsers      int64 `json:"total_users"`
		TotalCompanies  int64 `json:"total_companies"`
		VerifiedReviews int64 `json:"verified_reviews"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &dashboard))
	assert.GreaterOrEqual(t, dashboard.TotalUsers, int64(2))
	assert.GreaterOrEqual(t, dashboard.TotalCompanies, int64(1))
	assert.GreaterOrEqual(t, dashboard.VerifiedReviews, int64(1))
}

func TestAdminDuplicateSalaries(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Dup Co")

	// Two reports for the same title form a group, the third does not.
	helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 60000, models.ExperienceMiddle)
	helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 65000, models.ExperienceMiddle)
	helpers.CreateSalary(t, tx, user.ID, company.ID, "Designer", 50000, models.ExperienceMiddle)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/salaries/duplicates", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result struct {
		DuplicateGroups [][]struct {
			JobTitle  string `json:"job_title"`
			UserEmail string `json:"user_email"`
		} `json:"duplicate_groups"`
		TotalGroups    int `json:"total_groups"`
		TimeWindowDays int `json:"time_window_days"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	assert.Equal(t, 30, result.TimeWindowDays)
	require.Equal(t, 1, result.TotalGroups)
	require.Len(t, result.DuplicateGroups, 1)
	require.Len(t, result.DuplicateGroups[0], 2)
	assert.Equal(t, "Backend Engineer", result.DuplicateGroups[0][0].JobTitle)
	assert.NotEmpty(t, result.DuplicateGroups[0][0].UserEmail)
}

func TestAdminDuplicateSalaries_RequiresAdmin(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	memberToken, _ := helpers.CreateAndLoginMember(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/admin/salaries/duplicates", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestAdminDeleteSalary(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Delete Co")
	salary := helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 60000, models.ExperienceMiddle)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/admin/salaries/"+salary.ID, adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	res, _ = ts.SendRequest(t, tx, http.MethodDelete, "/api/v1/admin/salaries/"+salary.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestAdminRescanReview(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Rescan Co")

	review := models.Review{
		UserID:         user.ID,
		CompanyID:      company.ID,
		Rating:         2,
		EmployeeStatus: models.EmployeeStatusFormer,
		Pros:           "Free coffee",
		Cons:           "HR shares your data, contact me at leak@example.com",
		Status:         models.ReviewStatusPending,
	}
	require.NoError(t, tx.Create(&review).Error)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/reviews/"+review.ID+"/scan", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result struct {
		ReviewID    string              `json:"review_id"`
		IsSafe      string              `json:"is_safe"`
		HasFlags    bool                `json:"has_flags"`
		FlagsCount  int                 `json:"flags_count"`
		ScanResults map[string][]string `json:"scan_results"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	assert.Equal(t, review.ID, result.ReviewID)
	assert.Equal(t, "no", result.IsSafe)
	assert.True(t, result.HasFlags)
	assert.GreaterOrEqual(t, result.FlagsCount, 1)
	assert.NotEmpty(t, result.ScanResults["personal_info"])

	var flagCount int64
	require.NoError(t, tx.Model(&models.AIScannerFlag{}).Where("review_id = ?", review.ID).Count(&flagCount).Error)
	assert.EqualValues(t, result.FlagsCount, flagCount)
}

func TestAdminRescanReview_CleanContent(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)
	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Clean Co")
	review := helpers.CreateVerifiedReview(t, tx, user.ID, company.ID, 4)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/reviews/"+review.ID+"/scan", adminToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result struct {
		IsSafe     string `json:"is_safe"`
		HasFlags   bool   `json:"has_flags"`
		FlagsCount int    `json:"flags_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	assert.Equal(t, "yes", result.IsSafe)
	assert.False(t, result.HasFlags)
	assert.Zero(t, result.FlagsCount)
}

func TestAdminRescanReview_NotFound(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/admin/reviews/00000000-0000-0000-0000-000000000000/scan", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
