package dto

import (
	"time"

	"iwork_backend/internal/models"
)

type CreateReviewRequest struct {
	CompanyID           string     `json:"company_id" validate:"required,uuid"`
	Rating              float64    `json:"rating" validate:"required,min=1,max=5"`
	EmployeeStatus      string     `json:"employee_status" validate:"required,oneof=current former"`
	EmploymentStartDate *time.Time `json:"employment_start_date,omitempty"`
	EmploymentEndDate   *time.Time `json:"employment_end_date,omitempty"`
	Pros                string     `json:"pros" validate:"max=5000"`
	Cons                string     `json:"cons" validate:"max=5000"`
	Recommendations     string     `json:"recommendations" validate:"max=5000"`
	IsAnonymous         bool       `json:"is_anonymous"`
}

// UpdateReviewRequest uses pointers so absent fields stay untouched.
type UpdateReviewRequest struct {
	Rating              *float64   `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	EmployeeStatus      *string    `json:"employee_status,omitempty" validate:"omitempty,oneof=current former"`
	EmploymentStartDate *time.Time `json:"employment_start_date,omitempty"`
	EmploymentEndDate   *time.Time `json:"employment_end_date,omitempty"`
	Pros                *string    `json:"pros,omitempty" validate:"omitempty,max=5000"`
	Cons                *string    `json:"cons,omitempty" validate:"omitempty,max=5000"`
	Recommendations     *string    `json:"recommendations,omitempty" validate:"omitempty,max=5000"`
	IsAnonymous         *bool      `json:"is_anonymous,omitempty"`
}

type ModerateReviewRequest struct {
	Status          string `json:"status" validate:"required,oneof=verified rejected"`
	ModerationNotes string `json:"moderation_notes" validate:"max=2000"`
}

type ScannerFlagResponse struct {
	FlagType        string `json:"flag_type"`
	FlagDescription string `json:"flag_description"`
	FlaggedText     string `json:"flagged_text,omitempty"`
}

type FileAttachmentResponse struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	FileSize    int64  `json:"file_size"`
	ContentType string `json:"content_type,omitempty"`
}

type ReviewResponse struct {
	ID                  string                   `json:"id"`
	CompanyID           string                   `json:"company_id"`
	AuthorName          string                   `json:"author_name"`
	Rating              float64                  `json:"rating"`
	EmployeeStatus      string                   `json:"employee_status"`
	EmploymentStartDate *time.Time               `json:"employment_start_date,omitempty"`
	EmploymentEndDate   *time.Time               `json:"employment_end_date,omitempty"`
	Pros                string                   `json:"pros,omitempty"`
	Cons                string                   `json:"cons,omitempty"`
	Recommendations     string                   `json:"recommendations,omitempty"`
	Status              string                   `json:"status"`
	ModerationNotes     string                   `json:"moderation_notes,omitempty"`
	Flags               []ScannerFlagResponse    `json:"flags,omitempty"`
	Files               []FileAttachmentResponse `json:"files,omitempty"`
	CreatedAt           time.Time                `json:"created_at"`
}

// NewReviewResponse renders a review for its owner or a moderator: status,
// notes and flags are all visible.
func NewReviewResponse(review *models.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:                  review.ID,
		CompanyID:           review.CompanyID,
		AuthorName:          authorName(review),
		Rating:              review.Rating,
		EmployeeStatus:      string(review.EmployeeStatus),
		EmploymentStartDate: review.EmploymentStartDate,
		EmploymentEndDate:   review.EmploymentEndDate,
		Pros:                review.Pros,
		Cons:                review.Cons,
		Recommendations:     review.Recommendations,
		Status:              string(review.Status),
		ModerationNotes:     review.ModerationNotes,
		CreatedAt:           review.CreatedAt,
	}
	for _, flag := range review.AIScannerFlags {
		resp.Flags = append(resp.Flags, ScannerFlagResponse{
			FlagType:        flag.FlagType,
			FlagDescription: flag.FlagDescription,
			FlaggedText:     flag.FlaggedText,
		})
	}
	for _, file := range review.FileAttachments {
		resp.Files = append(resp.Files, FileAttachmentResponse{
			ID:          file.ID,
			FileName:    file.FileName,
			FileSize:    file.FileSize,
			ContentType: file.ContentType,
		})
	}
	return resp
}

// NewPublicReviewResponse renders a review for the public company page:
// moderation internals are stripped.
func NewPublicReviewResponse(review *models.Review) *ReviewResponse {
	resp := NewReviewResponse(review)
	resp.ModerationNotes = ""
	resp.Flags = nil
	return resp
}

func authorName(review *models.Review) string {
	if review.IsAnonymous {
		return "Anonymous"
	}
	return review.User.FullName()
}

// RescanReviewResponse reports the outcome of an on-demand content
// re-scan. IsSafe is the literal verdict string "yes" or "no".
type RescanReviewResponse struct {
	ReviewID    string              `json:"review_id"`
	IsSafe      string              `json:"is_safe"`
	HasFlags    bool                `json:"has_flags"`
	FlagsCount  int                 `json:"flags_count"`
	ScanResults map[string][]string `json:"scan_results"`
	Message     string              `json:"message"`
}
