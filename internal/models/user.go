package models

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	BaseModel
	Email        string   `gorm:"uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'"`
	FirstName    string
	LastName     string
	JobTitle     string
	ProfileImage string
	IsActive     bool `gorm:"default:true"`

	// Relations
	Reviews       []Review         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Salaries      []Salary         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Settings      *AccountSettings `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RefreshTokens []RefreshToken   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// FullName is the display name for non-anonymous content; falls back to
// "User" when both name fields are empty.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return "User"
	}
	return name
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// AccountSettings holds per-user notification preferences consumed by the
// review moderation notifier.
type AccountSettings struct {
	BaseModel
	UserID                    string `gorm:"not null;uniqueIndex"`
	EmailNotificationsEnabled bool   `gorm:"default:true"`
	NotifyOnReviewApproval    bool   `gorm:"default:true"`
	NotifyOnReviewRejection   bool   `gorm:"default:true"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	Revoked   bool      `gorm:"default:false"`
}
