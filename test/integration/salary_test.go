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

func TestSalaryStatistics(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Stats GmbH")

	helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 50000, models.ExperienceMiddle)
	helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 60000, models.ExperienceMiddle)
	helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 70000, models.ExperienceSenior)
	helpers.CreateSalary(t, tx, user.ID, company.ID, "Designer", 45000, models.ExperienceMiddle)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/salaries/statistics?job_title=Backend+Engineer", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var stats struct {
		Count   int64    `json:"count"`
		Average *float64 `json:"average"`
		Median  *float64 `json:"median"`
		Min     *float64 `json:"min"`
		Max     *float64 `json:"max"`
		P10     *float64 `json:"p10"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &stats))
	assert.Equal(t, int64(3), stats.Count)
	require.NotNil(t, stats.Average)
	assert.InDelta(t, 60000, *stats.Average, 0.01)
	require.NotNil(t, stats.Median)
	assert.InDelta(t, 60000, *stats.Median, 0.01)
	assert.InDelta(t, 50000, *stats.Min, 0.01)
	assert.InDelta(t, 70000, *stats.Max, 0.01)
	// Outer deciles need at least ten points.
	assert.Nil(t, stats.P10)
}

func TestSalaryStatistics_CaseInsensitiveTitle(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Case Co")

	helpers.CreateSalary(t, tx, user.ID, company.ID, "Data Scientist", 80000, models.ExperienceSenior)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/salaries/statistics?job_title=data+scientist", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var stats struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &stats))
	assert.Equal(t, int64(1), stats.Count)
}

func TestSalaryStatistics_EmptySample(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/salaries/statistics?job_title=Nonexistent+Role", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var stats struct {
		Count   int64    `json:"count"`
		Average *float64 `json:"average"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &stats))
	assert.Equal(t, int64(0), stats.Count)
	assert.Nil(t, stats.Average)
}

func TestSalaryBreakdown(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Breakdown AG")

	helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 50000, models.ExperienceJunior)
	helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 70000, models.ExperienceSenior)
	helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 75000, models.ExperienceSenior)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet,
		"/api/v1/salaries/breakdown?job_title=Backend+Engineer", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	type stats struct {
		Count   int64    `json:"count"`
		Average *float64 `json:"average"`
	}
	var breakdown struct {
		Overall    stats             `json:"overall"`
		ByLevel    map[string]stats  `json:"experience_level_breakdown"`
		ByType     map[string]stats  `json:"employment_type_breakdown"`
		ByLocation map[string]struct {
			AvgSalary float64 `json:"avg_salary"`
			Count     int64   `json:"count"`
		} `json:"location_breakdown"`
		ByIndustry map[string]struct {
			Count int64 `json:"count"`
		} `json:"industry_breakdown"`
		Currency string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &breakdown))

	assert.Equal(t, int64(3), breakdown.Overall.Count)
	assert.Equal(t, "USD", breakdown.Currency)

	// Only levels with samples appear.
	require.Len(t, breakdown.ByLevel, 2)
	assert.Equal(t, int64(2), breakdown.ByLevel["senior"].Count)
	require.NotNil(t, breakdown.ByLevel["senior"].Average)
	assert.InDelta(t, 72500, *breakdown.ByLevel["senior"].Average, 0.01)
	assert.Equal(t, int64(1), breakdown.ByLevel["junior"].Count)

	assert.Equal(t, int64(3), breakdown.ByType["full-time"].Count)

	require.Contains(t, breakdown.ByLocation, "Berlin")
	assert.Equal(t, int64(3), breakdown.ByLocation["Berlin"].Count)
	assert.InDelta(t, 65000, breakdown.ByLocation["Berlin"].AvgSalary, 0.01)

	require.Contains(t, breakdown.ByIndustry, "Technology")
	assert.Equal(t, int64(3), breakdown.ByIndustry["Technology"].Count)
}

func TestSalaryBreakdown_InvalidCompanyID(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/salaries/breakdown?company_id=not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestSalaryCompare_LocationVsRest(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Compare SA")

	helpers.CreateSalaryAt(t, tx, user.ID, company.ID, "Backend Engineer", 125000, models.ExperienceSenior, "Berlin")
	helpers.CreateSalaryAt(t, tx, user.ID, company.ID, "Backend Engineer", 90000, models.ExperienceJunior, "Hamburg")
	helpers.CreateSalaryAt(t, tx, user.ID, company.ID, "Backend Engineer", 110000, models.ExperienceMiddle, "Hamburg")

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet,
		"/api/v1/salaries/compare?job_title=Backend+Engineer&location=Berlin", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result struct {
		JobTitle           string `json:"job_title"`
		LocationComparison *struct {
			LocationAvgSalary  float64 `json:"location_avg_salary"`
			LocationSampleSize int64   `json:"location_sample_size"`
			NationalAvgSalary  float64 `json:"national_avg_salary"`
			NationalSampleSize int64   `json:"national_sample_size"`
			PercentDifference  float64 `json:"percent_difference"`
			IsAboveNationalAvg bool    `json:"is_above_national_avg"`
		} `json:"location_comparison"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	assert.Equal(t, "Backend Engineer", result.JobTitle)
	require.NotNil(t, result.LocationComparison)
	assert.InDelta(t, 125000, result.LocationComparison.LocationAvgSalary, 0.01)
	assert.Equal(t, int64(1), result.LocationComparison.LocationSampleSize)
	assert.InDelta(t, 100000, result.LocationComparison.NationalAvgSalary, 0.01)
	assert.Equal(t, int64(2), result.LocationComparison.NationalSampleSize)
	assert.InDelta(t, 25.0, result.LocationComparison.PercentDifference, 0.01)
	assert.True(t, result.LocationComparison.IsAboveNationalAvg)
}

func TestSalaryCompare_CompanyVsIndustry(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Underpay GmbH")
	rival := helpers.CreateCompany(t, tx, "Rival GmbH")

	helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 80000, models.ExperienceSenior)
	helpers.CreateSalary(t, tx, user.ID, rival.ID, "Backend Engineer", 90000, models.ExperienceSenior)
	helpers.CreateSalary(t, tx, user.ID, rival.ID, "Backend Engineer", 110000, models.ExperienceSenior)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet,
		"/api/v1/salaries/compare?job_title=Backend+Engineer&company_id="+company.ID, "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var result struct {
		CompanyComparison *struct {
			CompanyName        string  `json:"company_name"`
			CompanyAvgSalary   float64 `json:"company_avg_salary"`
			IndustryAvgSalary  float64 `json:"industry_avg_salary"`
			IndustrySampleSize int64   `json:"industry_sample_size"`
			PercentDifference  float64 `json:"percent_difference"`
			IsAboveIndustryAvg bool    `json:"is_above_industry_avg"`
		} `json:"company_comparison"`
		LocationComparison *struct{} `json:"location_comparison"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &result))
	require.NotNil(t, result.CompanyComparison)
	assert.Equal(t, "Underpay GmbH", result.CompanyComparison.CompanyName)
	assert.InDelta(t, 80000, result.CompanyComparison.CompanyAvgSalary, 0.01)
	// The industry reference excludes the company itself.
	assert.InDelta(t, 100000, result.CompanyComparison.IndustryAvgSalary, 0.01)
	assert.Equal(t, int64(2), result.CompanyComparison.IndustrySampleSize)
	assert.InDelta(t, -20.0, result.CompanyComparison.PercentDifference, 0.01)
	assert.False(t, result.CompanyComparison.IsAboveIndustryAvg)
	assert.Nil(t, result.LocationComparison)
}

func TestSalaryCompare_MissingJobTitle(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/salaries/compare", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCreateSalary_RequiresAuth(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	company := helpers.CreateCompany(t, tx, "Auth Co")
	createBody := map[string]interface{}{
		"company_id":       company.ID,
		"job_title":        "Backend Engineer",
		"amount":           65000,
		"experience_level": "middle",
		"employment_type":  "full-time",
	}
	res, _ := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/salaries", "", createBody)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreateSalary_DefaultsCurrency(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	memberToken, _ := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Currency Co")

	createBody := map[string]interface{}{
		"company_id":       company.ID,
		"job_title":        "Backend Engineer",
		"amount":           65000,
		"experience_level": "middle",
		"employment_type":  "full-time",
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/salaries", memberToken, createBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, bodyStr)

	var created struct {
		Currency string `json:"currency"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &created))
	assert.Equal(t, "USD", created.Currency)
}

func TestCompanySalariesListing(t *testing.T) {
	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginMember(t, ts, tx)
	company := helpers.CreateCompany(t, tx, "Listing Co")
	other := helpers.CreateCompany(t, tx, "Other Co")

	helpers.CreateSalary(t, tx, user.ID, company.ID, "Backend Engineer", 65000, models.ExperienceMiddle)
	helpers.CreateSalary(t, tx, user.ID, other.ID, "Backend Engineer", 99000, models.ExperienceMiddle)

	res, bodyStr := ts.SendRequest(t, tx, http.MethodGet, "/api/v1/companies/"+company.ID+"/salaries", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var page struct {
		Total int64 `json:"total"`
		Items []struct {
			CompanyID string  `json:"company_id"`
			Amount    float64 `json:"amount"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &page))
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, company.ID, page.Items[0].CompanyID)
}
