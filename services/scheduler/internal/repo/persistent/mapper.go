package persistent

import (
	"orbit-scheduler/services/scheduler/internal/entity"
	"orbit-scheduler/services/scheduler/internal/model"
)

func ToPostModel(post *entity.Post) *model.PostModel {
	return &model.PostModel{
		ID:          post.ID,
		OwnerID:     post.OwnerID,
		Provider:    string(post.Provider),
		Content:     post.Content,
		MediaURL:    post.MediaURL,
		ScheduledAt: post.ScheduledAt,
		Status:      string(post.Status),
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}

func ToPostEntity(postModel *model.PostModel) *entity.Post {
	return &entity.Post{
		ID:          postModel.ID,
		OwnerID:     postModel.OwnerID,
		Provider:    entity.Provider(postModel.Provider),
		Content:     postModel.Content,
		MediaURL:    postModel.MediaURL,
		ScheduledAt: postModel.ScheduledAt,
		Status:      entity.PostStatus(postModel.Status),
		CreatedAt:   postModel.CreatedAt,
		UpdatedAt:   postModel.UpdatedAt,
	}
}
