package repository

import (
	"orbit-scheduler/pkg/models"

	"gorm.io/gorm"
)

type ModerationRepository interface {
	GetPostByID(id string) (*models.Post, error)
	GetReviewQueue(limit, offset int) ([]*models.Post, error)
	UpdatePostStatus(id string, from, to models.PostStatus) (bool, error)
}

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) GetPostByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *moderationRepository) GetReviewQueue(limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	query := r.db.Where("status = ?", models.StatusNeedsApproval).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePostStatus only writes if the post still holds the expected prior
// status. Returns false when another moderator got there first.
func (r *moderationRepository) UpdatePostStatus(id string, from, to models.PostStatus) (bool, error) {
	result := r.db.Model(&models.Post{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
