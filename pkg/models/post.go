package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostStatus string

const (
	StatusNeedsApproval PostStatus = "needs_approval"
	StatusPending       PostStatus = "pending"
	StatusPublished     PostStatus = "published"
	StatusFailed        PostStatus = "failed"
	StatusBlocked       PostStatus = "blocked"
)

type Provider string

const (
	ProviderYouTube   Provider = "youtube"
	ProviderFacebook  Provider = "facebook"
	ProviderInstagram Provider = "instagram"
	ProviderTikTok    Provider = "tiktok"
	ProviderTwitter   Provider = "twitter"
	ProviderLinkedIn  Provider = "linkedin"
	ProviderPinterest Provider = "pinterest"
)

type Post struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Provider    Provider       `gorm:"type:varchar(20);not null" json:"provider"`
	Content     string         `gorm:"not null" json:"content"`
	MediaURL    string         `json:"media_url"`
	ScheduledAt time.Time      `gorm:"not null;index" json:"scheduled_at"`
	Status      PostStatus     `gorm:"type:varchar(20);default:'needs_approval';index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
