package validator

import (
	"testing"

	"iwork_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewRequestWithRating(rating float64) *dto.CreateReviewRequest {
	return &dto.CreateReviewRequest{
		CompanyID:      "2f6b9c1e-8a4d-4f3b-9c2e-1d5a7b8c9d0e",
		Rating:         rating,
		EmployeeStatus: "current",
		Pros:           "Solid onboarding",
		Cons:           "Slow CI",
	}
}

func TestValidate_RatingBoundsInclusive(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(reviewRequestWithRating(1.0)))
	assert.NoError(t, v.Validate(reviewRequestWithRating(5.0)))
	assert.Error(t, v.Validate(reviewRequestWithRating(0.99)))
	assert.Error(t, v.Validate(reviewRequestWithRating(5.01)))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(reviewRequestWithRating(5.01))
	require.Error(t, err)

	valErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, valErr.Errors, "rating")
}
