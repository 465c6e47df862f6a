package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/pkg/queue"
	"orbit-scheduler/pkg/s3"
	"orbit-scheduler/services/scheduler/internal/entity"
	"orbit-scheduler/services/scheduler/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PostEventsChannel is the redis pub/sub channel other observers of the post
// collection subscribe to for change notification.
const PostEventsChannel = "posts:events"

var (
	ErrEmptyContent    = errors.New("post content must not be empty")
	ErrInvalidProvider = errors.New("unknown social provider")
)

type PostUseCase interface {
	CreatePost(ownerID, provider, content string, scheduledAt time.Time, mediaFile *multipart.FileHeader) (*entity.Post, error)
	GetPost(postID string) (*entity.Post, error)
	ListPosts(status entity.PostStatus, limit, offset int) ([]*entity.Post, error)
	GetOwnerPosts(ownerID string, limit, offset int) ([]*entity.Post, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	s3Client    *s3.Client
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	s3Client *s3.Client,
	redisClient *redis.Client,
	queueClient *queue.Client,
	logger *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		s3Client:    s3Client,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
	}
}

func (uc *postUseCase) CreatePost(ownerID, provider, content string, scheduledAt time.Time, mediaFile *multipart.FileHeader) (*entity.Post, error) {
	// Validation happens before anything is persisted
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	prov := entity.Provider(strings.ToLower(provider))
	if !prov.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidProvider, provider)
	}

	var mediaURL string
	if mediaFile != nil {
		if uc.s3Client == nil {
			return nil, fmt.Errorf("media storage is not configured")
		}

		src, err := mediaFile.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open media file: %w", err)
		}
		defer src.Close()

		fileKey := fmt.Sprintf("posts/%s/%s%s", ownerID, uuid.New().String(), getFileExtension(mediaFile.Filename))
		contentType := mediaFile.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		uploadedURL, err := uc.s3Client.UploadMedia(fileKey, src, contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload media to S3: %w", err)
		}
		mediaURL = uploadedURL
	}

	post := &entity.Post{
		OwnerID:     ownerID,
		Provider:    prov,
		Content:     content,
		MediaURL:    mediaURL,
		ScheduledAt: scheduledAt,
		Status:      entity.StatusNeedsApproval,
	}

	if err := uc.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.cachePost(post)
	uc.publishChange(post, "post.created")

	if uc.queueClient != nil {
		go uc.publishCreatedEvent(post)
	}

	return post, nil
}

func (uc *postUseCase) GetPost(postID string) (*entity.Post, error) {
	return uc.postRepo.GetByID(postID)
}

func (uc *postUseCase) ListPosts(status entity.PostStatus, limit, offset int) ([]*entity.Post, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown post status: %q", status)
	}
	return uc.postRepo.List(status, limit, offset)
}

func (uc *postUseCase) GetOwnerPosts(ownerID string, limit, offset int) ([]*entity.Post, error) {
	return uc.postRepo.GetByOwnerID(ownerID, limit, offset)
}

func (uc *postUseCase) cachePost(post *entity.Post) {
	if uc.redisClient == nil {
		return
	}

	ctx := context.Background()
	postKey := fmt.Sprintf("post:%s", post.ID)
	postData := map[string]interface{}{
		"id":           post.ID,
		"owner_id":     post.OwnerID,
		"provider":     string(post.Provider),
		"content":      post.Content,
		"media_url":    post.MediaURL,
		"scheduled_at": post.ScheduledAt.UTC().Format(time.RFC3339),
		"status":       string(post.Status),
	}

	for k, v := range postData {
		uc.redisClient.HSet(ctx, postKey, k, v)
	}
	uc.redisClient.Expire(ctx, postKey, 24*time.Hour)
}

// publishChange notifies other observers of the post collection (other
// sessions, the moderation dashboard) that a post changed.
func (uc *postUseCase) publishChange(post *entity.Post, eventType string) {
	if uc.redisClient == nil {
		return
	}

	payload, err := json.Marshal(map[string]string{
		"type":    eventType,
		"post_id": post.ID,
		"status":  string(post.Status),
	})
	if err != nil {
		return
	}

	if err := uc.redisClient.Publish(context.Background(), PostEventsChannel, payload).Err(); err != nil {
		uc.logger.Warn("Failed to publish post change event: %v", err)
	}
}

func (uc *postUseCase) publishCreatedEvent(post *entity.Post) {
	event := queue.PostEvent{
		Type:     "post_created",
		PostID:   post.ID,
		OwnerID:  post.OwnerID,
		Provider: string(post.Provider),
		Message:  fmt.Sprintf("Your %s post is awaiting approval.", post.Provider.DisplayName()),
		Severity: SeverityInfo,
	}

	if err := uc.queueClient.PublishPostEvent(event); err != nil {
		uc.logger.Error("Failed to publish created event for post %s: %v", post.ID, err)
	}
}

func getFileExtension(filename string) string {
	if idx := strings.LastIndexByte(filename, '.'); idx >= 0 {
		return filename[idx:]
	}
	return ""
}
