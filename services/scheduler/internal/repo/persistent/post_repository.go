package persistent

import (
	"time"

	"orbit-scheduler/services/scheduler/internal/entity"
	"orbit-scheduler/services/scheduler/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	GetByOwnerID(ownerID string, limit, offset int) ([]*entity.Post, error)
	List(status entity.PostStatus, limit, offset int) ([]*entity.Post, error)
	ListDue(status entity.PostStatus, due time.Time, limit int) ([]*entity.Post, error)
	UpdateStatus(id string, from, to entity.PostStatus) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}

	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	if err := r.db.Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) GetByOwnerID(ownerID string, limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.db.Where("owner_id = ?", ownerID).Order("scheduled_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toEntities(postModels), nil
}

func (r *postRepository) List(status entity.PostStatus, limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.db.Order("scheduled_at ASC")
	if status != "" {
		query = query.Where("status = ?", string(status))
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toEntities(postModels), nil
}

// ListDue returns posts in the given status whose scheduled time is at or
// before due. The boundary is inclusive: a post scheduled exactly at due
// qualifies.
func (r *postRepository) ListDue(status entity.PostStatus, due time.Time, limit int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.db.
		Where("status = ? AND scheduled_at <= ?", string(status), due).
		Order("scheduled_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toEntities(postModels), nil
}

// UpdateStatus is the conditional write at the heart of the lifecycle: the
// status column moves to `to` only if it still equals `from` at write time.
// The returned bool reports whether the update applied; a lost race or an
// already-moderated post comes back (false, nil), never an error.
func (r *postRepository) UpdateStatus(id string, from, to entity.PostStatus) (bool, error) {
	if !from.CanTransitionTo(to) {
		return false, nil
	}

	result := r.db.Model(&model.PostModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func toEntities(postModels []model.PostModel) []*entity.Post {
	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts
}
