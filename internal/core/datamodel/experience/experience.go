package experience

import "time"

type Experience struct {
	ID                int64      `gorm:"primaryKey"`
	ExternalID        string     `gorm:"column:external_id;not null;uniqueIndex"`
	CompanyName       string     `gorm:"column:company_name;not null"`
	CompanyLogo       *string    `gorm:"column:company_logo"`
	Positions         []Position `gorm:"column:positions;serializer:json"`
	IsCurrentEmployer bool       `gorm:"column:is_current_employer;not null;default:false"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// Position is stored inline as JSON.
type Position struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	EmploymentPeriod string   `json:"employment_period"`
	EmploymentType   *string  `json:"employment_type,omitempty"`
	Description      *string  `json:"description,omitempty"`
	Icon             *string  `json:"icon,omitempty"`
	Skills           []string `json:"skills,omitempty"`
	IsExpanded       bool     `json:"is_expanded"`
}

func (Experience) TableName() string {
	return "experiences"
}
