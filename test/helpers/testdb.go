package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"iwork_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser inserts a user inside the test transaction. A raw password in
// PasswordHash is bcrypt-hashed first so the user can log in through the API.
func CreateUser(t *testing.T, tx *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Failed to hash test password: %v", err)
		}
		user.PasswordHash = string(hashed)
	}
	user.IsActive = true

	if err := tx.Create(user).Error; err != nil {
		t.Logf("Failed to create test user %s: %v", user.Email, err)
		return err
	}
	return nil
}

// CreateAndLoginUser creates a user and logs in through the API, returning
// the access token for subsequent requests.
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Email:        email,
		PasswordHash: password,
		Role:         role,
		FirstName:    "Test",
		LastName:     "User",
	}
	err := CreateUser(t, tx, user)
	require.NoError(t, err, "creating a test user must not fail")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, tx, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "login must succeed, got: "+bodyStr)

	var loginResponse struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	require.NoError(t, err)
	require.NotEmpty(t, loginResponse.Tokens.AccessToken)

	return loginResponse.Tokens.AccessToken, user
}

// CreateAndLoginMember creates a regular user with a unique email.
func CreateAndLoginMember(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("member_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, email, "password123", models.UserRoleUser)
}

// CreateAndLoginAdmin creates an admin user with a unique email.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, email, "password123", models.UserRoleAdmin)
}

// CreateCompany inserts a company inside the test transaction.
func CreateCompany(t *testing.T, tx *gorm.DB, name string) models.Company {
	company := models.Company{
		Name:     name,
		Industry: "Technology",
		Location: "Berlin",
	}
	if err := tx.Create(&company).Error; err != nil {
		t.Fatalf("Failed to create test company: %v", err)
	}
	return company
}

// CreateVerifiedReview inserts a review already past moderation.
func CreateVerifiedReview(t *testing.T, tx *gorm.DB, userID, companyID string, rating float64) models.Review {
	review := models.Review{
		UserID:         userID,
		CompanyID:      companyID,
		Rating:         rating,
		EmployeeStatus: models.EmployeeStatusCurrent,
		Pros:           "Good colleagues",
		Cons:           "Long meetings",
		Status:         models.ReviewStatusVerified,
	}
	if err := tx.Create(&review).Error; err != nil {
		t.Fatalf("Failed to create test review: %v", err)
	}
	return review
}

// CreateSalary inserts a salary record inside the test transaction.
func CreateSalary(t *testing.T, tx *gorm.DB, userID, companyID, jobTitle string, amount float64, level models.ExperienceLevel) models.Salary {
	return CreateSalaryAt(t, tx, userID, companyID, jobTitle, amount, level, "Berlin")
}

// CreateSalaryAt is CreateSalary with an explicit location.
func CreateSalaryAt(t *testing.T, tx *gorm.DB, userID, companyID, jobTitle string, amount float64, level models.ExperienceLevel, location string) models.Salary {
	salary := models.Salary{
		UserID:          userID,
		CompanyID:       companyID,
		JobTitle:        jobTitle,
		Amount:          amount,
		Currency:        "USD",
		ExperienceLevel: level,
		EmploymentType:  models.EmploymentFullTime,
		Location:        location,
	}
	if err := tx.Create(&salary).Error; err != nil {
		t.Fatalf("Failed to create test salary: %v", err)
	}
	return salary
}
