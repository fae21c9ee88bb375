package services

import (
	"testing"
	"time"

	"iwork_backend/internal/models"
	"iwork_backend/internal/services/dto"
	"iwork_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateModeration_PendingToVerified(t *testing.T) {
	err := ValidateModeration(models.ReviewStatusPending, models.ReviewStatusVerified, "")
	assert.NoError(t, err)
}

func TestValidateModeration_PendingToRejectedRequiresNotes(t *testing.T) {
	err := ValidateModeration(models.ReviewStatusPending, models.ReviewStatusRejected, "")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	err = ValidateModeration(models.ReviewStatusPending, models.ReviewStatusRejected, "contains personal info")
	assert.NoError(t, err)
}

func TestValidateModeration_OnlyPendingTransitions(t *testing.T) {
	for _, current := range []models.ReviewStatus{models.ReviewStatusVerified, models.ReviewStatusRejected} {
		err := ValidateModeration(current, models.ReviewStatusVerified, "")
		require.Error(t, err, "status %s", current)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
	}
}

func TestValidateModeration_TargetMustBeTerminal(t *testing.T) {
	err := ValidateModeration(models.ReviewStatusPending, models.ReviewStatusPending, "")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidTransition, appErr.Code)
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool      { return &v }

func TestApplyReviewUpdate_ContentFieldsResetModeration(t *testing.T) {
	review := &models.Review{
		Rating: 3,
		Pros:   "old pros",
		Status: models.ReviewStatusRejected,
	}

	changed := applyReviewUpdate(review, &dto.UpdateReviewRequest{Pros: strPtr("new pros")})
	assert.True(t, changed)
	assert.Equal(t, "new pros", review.Pros)

	changed = applyReviewUpdate(review, &dto.UpdateReviewRequest{Rating: f64Ptr(4)})
	assert.True(t, changed)
	assert.Equal(t, 4.0, review.Rating)
}

func TestApplyReviewUpdate_MetadataOnlyKeepsStatus(t *testing.T) {
	review := &models.Review{
		Rating:         3,
		IsAnonymous:    false,
		EmployeeStatus: models.EmployeeStatusCurrent,
	}

	changed := applyReviewUpdate(review, &dto.UpdateReviewRequest{
		IsAnonymous:    boolPtr(true),
		EmployeeStatus: strPtr("former"),
	})
	assert.False(t, changed)
	assert.True(t, review.IsAnonymous)
	assert.Equal(t, models.EmployeeStatusFormer, review.EmployeeStatus)
}

func TestApplyReviewUpdate_NoopWhenValuesUnchanged(t *testing.T) {
	review := &models.Review{Rating: 4, Pros: "same"}

	changed := applyReviewUpdate(review, &dto.UpdateReviewRequest{
		Rating: f64Ptr(4),
		Pros:   strPtr("same"),
	})
	assert.False(t, changed)
}

func TestApplyReviewUpdate_EmptyRequestChangesNothing(t *testing.T) {
	review := &models.Review{Rating: 2, Cons: "long hours"}
	changed := applyReviewUpdate(review, &dto.UpdateReviewRequest{})
	assert.False(t, changed)
	assert.Equal(t, 2.0, review.Rating)
	assert.Equal(t, "long hours", review.Cons)
}

func TestValidateEmploymentDates_InvertedRangeRejected(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	err := ValidateEmploymentDates(&start, &end)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestValidateEmploymentDates_OrderedAndOpenRangesPass(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateEmploymentDates(&start, &end))
	// Same-day start and end is a valid one-day stint.
	assert.NoError(t, ValidateEmploymentDates(&start, &start))
	assert.NoError(t, ValidateEmploymentDates(&start, nil))
	assert.NoError(t, ValidateEmploymentDates(nil, &end))
	assert.NoError(t, ValidateEmploymentDates(nil, nil))
}
