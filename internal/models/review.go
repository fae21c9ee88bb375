package models

import "time"

type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusVerified ReviewStatus = "verified"
	ReviewStatusRejected ReviewStatus = "rejected"
)

type EmployeeStatus string

const (
	EmployeeStatusCurrent EmployeeStatus = "current"
	EmployeeStatusFormer  EmployeeStatus = "former"
)

type Review struct {
	BaseModel
	UserID              string         `gorm:"not null;index"`
	CompanyID           string         `gorm:"not null;index"`
	Rating              float64        `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	EmployeeStatus      EmployeeStatus `gorm:"type:varchar(20);not null"`
	EmploymentStartDate *time.Time
	EmploymentEndDate   *time.Time
	Pros                string       `gorm:"type:text"`
	Cons                string       `gorm:"type:text"`
	Recommendations     string       `gorm:"type:text"`
	IsAnonymous         bool         `gorm:"default:false"`
	Status              ReviewStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ModerationNotes     string       `gorm:"type:text"`

	// Relations
	User            User             `gorm:"foreignKey:UserID"`
	Company         Company          `gorm:"foreignKey:CompanyID"`
	AIScannerFlags  []AIScannerFlag  `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
	FileAttachments []FileAttachment `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

// ScannableContent is the text handed to the content screener: all
// free-text fields joined the way the moderation pipeline expects.
func (r *Review) ScannableContent() string {
	return r.Pros + " " + r.Cons + " " + r.Recommendations
}

// AIScannerFlag is one policy finding attached to a review by the content
// screener. The full set for a review is replaced atomically whenever its
// content changes and screening re-runs.
type AIScannerFlag struct {
	BaseModel
	ReviewID        string `gorm:"not null;index"`
	FlagType        string `gorm:"not null"`
	FlagDescription string `gorm:"not null"`
	FlaggedText     string `gorm:"type:text"`
}
