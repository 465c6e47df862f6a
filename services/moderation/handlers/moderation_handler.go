package handlers

import (
	"context"
	"fmt"
	"net/http"

	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/pkg/models"
	"orbit-scheduler/services/moderation/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// PostEventsChannel carries change notifications for post lifecycle
// transitions. Subscribers refresh their view when a message arrives.
const PostEventsChannel = "posts:events"

type ModerationHandler struct {
	moderationRepo repository.ModerationRepository
	redisClient    *redis.Client
	logger         *logger.Logger
}

func NewModerationHandler(moderationRepo repository.ModerationRepository, redisClient *redis.Client, logger *logger.Logger) *ModerationHandler {
	return &ModerationHandler{
		moderationRepo: moderationRepo,
		redisClient:    redisClient,
		logger:         logger,
	}
}

func (h *ModerationHandler) GetReviewQueue(c *gin.Context) {
	limit := 50
	offset := 0

	posts, err := h.moderationRepo.GetReviewQueue(limit, offset)
	if err != nil {
		h.logger.Error("Failed to get review queue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get review queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// ApprovePost moves a post awaiting review into the pending queue, where
// the scheduler picks it up once its publish time arrives.
func (h *ModerationHandler) ApprovePost(c *gin.Context) {
	h.moderate(c, models.StatusPending, "Post approved")
}

// BlockPost permanently keeps a post awaiting review from publishing.
func (h *ModerationHandler) BlockPost(c *gin.Context) {
	h.moderate(c, models.StatusBlocked, "Post blocked")
}

func (h *ModerationHandler) moderate(c *gin.Context, to models.PostStatus, message string) {
	postID := c.Param("post_id")

	if _, err := h.moderationRepo.GetPostByID(postID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	applied, err := h.moderationRepo.UpdatePostStatus(postID, models.StatusNeedsApproval, to)
	if err != nil {
		h.logger.Error("Failed to update post status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post status"})
		return
	}

	// Another moderator already handled this one. Not an error: the
	// decision simply stands and this request becomes a no-op.
	if !applied {
		c.JSON(http.StatusOK, gin.H{
			"message": "Post already moderated",
			"post_id": postID,
		})
		return
	}

	if h.redisClient != nil {
		ctx := context.Background()
		eventKey := fmt.Sprintf("post:%s:%s", postID, to)
		h.redisClient.Publish(ctx, PostEventsChannel, eventKey)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"post_id": postID,
		"status":  to,
	})
}
