package education

import "time"

type Education struct {
	ID              int64     `gorm:"primaryKey"`
	ExternalID      string    `gorm:"column:external_id;not null;uniqueIndex"`
	InstitutionName string    `gorm:"column:institution_name;not null"`
	InstitutionLogo *string   `gorm:"column:institution_logo"`
	Degrees         []Degree  `gorm:"column:degrees;serializer:json"`
	IsCurrent       bool      `gorm:"column:is_current;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

type Degree struct {
	ID          string   `json:"id"`
	Degree      string   `json:"degree"`
	Period      string   `json:"period"`
	Description *string  `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	IsExpanded  bool     `json:"is_expanded"`
}

func (Education) TableName() string {
	return "educations"
}
