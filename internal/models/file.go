package models

// FileAttachment is an uploaded document tied to a review, e.g. proof of
// employment. Stored on disk; only the path and metadata live in the DB.
type FileAttachment struct {
	BaseModel
	ReviewID    string `gorm:"not null;index"`
	FileName    string `gorm:"not null"`
	FilePath    string `gorm:"not null"`
	FileSize    int64
	ContentType string
}
