package project

import "time"

type Project struct {
	ID               int64     `gorm:"primaryKey"`
	Title            string    `gorm:"column:title;not null"`
	Slug             string    `gorm:"column:slug;not null;uniqueIndex"`
	Year             string    `gorm:"column:year;not null"`
	Category         string    `gorm:"column:category;not null"`
	Client           string    `gorm:"column:client;not null"`
	Overview         string    `gorm:"column:overview;not null"`
	HeroImage        string    `gorm:"column:hero_image;not null"`
	HeroImageCaption *string   `gorm:"column:hero_image_caption"`
	GalleryImages    []string  `gorm:"column:gallery_images;serializer:json"`
	Featured         bool      `gorm:"column:featured;not null;default:false"`
	SortOrder        *int      `gorm:"column:sort_order"`
	WebsiteURL       *string   `gorm:"column:website_url"`
	Description      *string   `gorm:"column:description"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}
