package http

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/services/scheduler/internal/entity"
	"orbit-scheduler/services/scheduler/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	Provider    string `form:"provider" binding:"required"`
	Content     string `form:"content"`
	ScheduledAt string `form:"scheduled_at" binding:"required"`
}

// CreatePost godoc
// @Summary      Schedule a new post
// @Description  Create a post targeting one social platform with a future (or past, meaning "as soon as approved") publish time. New posts enter the approval queue.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        provider formData string true "Target platform" Enums(youtube, facebook, instagram, tiktok, twitter, linkedin, pinterest)
// @Param        content formData string true "Post body"
// @Param        scheduled_at formData string true "Publish time, RFC3339"
// @Param        media formData file false "Optional media attachment"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	ownerID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_at must be an RFC3339 timestamp"})
		return
	}

	var mediaFile *multipart.FileHeader
	if file, err := c.FormFile("media"); err == nil {
		mediaFile = file
	}

	post, err := h.postUseCase.CreatePost(ownerID, req.Provider, req.Content, scheduledAt, mediaFile)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyContent) || errors.Is(err, usecase.ErrInvalidProvider) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")

	post, err := h.postUseCase.GetPost(postID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListPosts godoc
// @Summary      List posts
// @Description  List posts, optionally filtered by lifecycle status.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Lifecycle status" Enums(needs_approval, pending, published, failed, blocked)
// @Param        limit  query int    false "Page size"
// @Param        offset query int    false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	status := entity.PostStatus(c.Query("status"))

	posts, err := h.postUseCase.ListPosts(status, limit, offset)
	if err != nil {
		if status != "" && !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// GetOwnerPosts godoc
// @Summary      List an owner's posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id path string true "Owner ID"
// @Param        limit  query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /posts/owner/{owner_id} [get]
func (h *PostHandler) GetOwnerPosts(c *gin.Context) {
	ownerID := c.Param("owner_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	posts, err := h.postUseCase.GetOwnerPosts(ownerID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get posts for owner %s: %v", ownerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}
