package models

type Company struct {
	BaseModel
	Name        string `gorm:"index;not null"`
	Description string `gorm:"type:text"`
	Industry    string `gorm:"index"`
	Location    string `gorm:"index"`
	LogoURL     string
	Website     string
	FoundedYear int
	IsPublic    bool `gorm:"default:false"`
	StockSymbol string
	SecCIK      string `gorm:"index"` // regulatory identifier for filings lookups

	// Relations
	Reviews  []Review `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
	Salaries []Salary `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`
}
