package dto

import "iwork_backend/internal/models"

type SettingsResponse struct {
	EmailNotificationsEnabled bool `json:"email_notifications_enabled"`
	NotifyOnReviewApproval    bool `json:"notify_on_review_approval"`
	NotifyOnReviewRejection   bool `json:"notify_on_review_rejection"`
}

func NewSettingsResponse(settings *models.AccountSettings) *SettingsResponse {
	return &SettingsResponse{
		EmailNotificationsEnabled: settings.EmailNotificationsEnabled,
		NotifyOnReviewApproval:    settings.NotifyOnReviewApproval,
		NotifyOnReviewRejection:   settings.NotifyOnReviewRejection,
	}
}

type UpdateSettingsRequest struct {
	EmailNotificationsEnabled *bool `json:"email_notifications_enabled,omitempty"`
	NotifyOnReviewApproval    *bool `json:"notify_on_review_approval,omitempty"`
	NotifyOnReviewRejection   *bool `json:"notify_on_review_rejection,omitempty"`
}
