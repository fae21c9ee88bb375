package models

type ExperienceLevel = string

const (
	ExperienceIntern    ExperienceLevel = "intern"
	ExperienceJunior    ExperienceLevel = "junior"
	ExperienceMiddle    ExperienceLevel = "middle"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceExecutive ExperienceLevel = "executive"
)

// ExperienceLevels lists the known levels in seniority order. Storage is an
// open string column, so new levels need only a constant and a validator
// update, not a migration.
var ExperienceLevels = []ExperienceLevel{
	ExperienceIntern,
	ExperienceJunior,
	ExperienceMiddle,
	ExperienceSenior,
	ExperienceExecutive,
}

type EmploymentType = string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentFreelance  EmploymentType = "freelance"
)

// EmploymentTypes lists the known employment types.
var EmploymentTypes = []EmploymentType{
	EmploymentFullTime,
	EmploymentPartTime,
	EmploymentContract,
	EmploymentInternship,
	EmploymentFreelance,
}

type Salary struct {
	BaseModel
	UserID          string  `gorm:"not null;index"`
	CompanyID       string  `gorm:"not null;index"`
	JobTitle        string  `gorm:"not null;index"`
	Amount          float64 `gorm:"not null;check:amount > 0"`
	Currency        string  `gorm:"not null;default:'USD'"`
	ExperienceLevel string  `gorm:"type:varchar(20);not null;index"`
	EmploymentType  string  `gorm:"type:varchar(20);not null"`
	Location        string  `gorm:"index"`
	IsAnonymous     bool    `gorm:"default:false"`

	// Relations
	User    User    `gorm:"foreignKey:UserID"`
	Company Company `gorm:"foreignKey:CompanyID"`
}
