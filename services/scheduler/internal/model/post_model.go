package model

import (
	"time"

	"gorm.io/gorm"
)

type PostModel struct {
	ID          string         `gorm:"type:uuid;primary_key"`
	OwnerID     string         `gorm:"type:uuid;not null;index"`
	Provider    string         `gorm:"type:varchar(20);not null"`
	Content     string         `gorm:"not null"`
	MediaURL    string         ``
	ScheduledAt time.Time      `gorm:"not null;index"`
	Status      string         `gorm:"type:varchar(20);default:'needs_approval';index"`
	CreatedAt   time.Time      ``
	UpdatedAt   time.Time      ``
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (PostModel) TableName() string {
	return "posts"
}
