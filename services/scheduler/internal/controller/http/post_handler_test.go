package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/services/scheduler/internal/entity"
	"orbit-scheduler/services/scheduler/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) CreatePost(ownerID, provider, content string, scheduledAt time.Time, mediaFile *multipart.FileHeader) (*entity.Post, error) {
	args := m.Called(ownerID, provider, content, scheduledAt, mediaFile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(postID string) (*entity.Post, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) ListPosts(status entity.PostStatus, limit, offset int) ([]*entity.Post, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetOwnerPosts(ownerID string, limit, offset int) ([]*entity.Post, error) {
	args := m.Called(ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePost(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", "owner-1")
		handler.CreatePost(c)
	})

	scheduledAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	created := &entity.Post{
		ID:          "post-1",
		OwnerID:     "owner-1",
		Provider:    entity.ProviderInstagram,
		Content:     "Launch day!",
		ScheduledAt: scheduledAt,
		Status:      entity.StatusNeedsApproval,
	}
	mockUseCase.On("CreatePost", "owner-1", "instagram", "Launch day!", scheduledAt, (*multipart.FileHeader)(nil)).Return(created, nil)

	form := url.Values{}
	form.Set("provider", "instagram")
	form.Set("content", "Launch day!")
	form.Set("scheduled_at", scheduledAt.Format(time.RFC3339))

	w := postForm(router, "/posts", form)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response entity.Post
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "post-1", response.ID)
	assert.Equal(t, entity.StatusNeedsApproval, response.Status)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_EmptyContent(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", "owner-1")
		handler.CreatePost(c)
	})

	scheduledAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	mockUseCase.On("CreatePost", "owner-1", "instagram", "", scheduledAt, (*multipart.FileHeader)(nil)).Return(nil, usecase.ErrEmptyContent)

	form := url.Values{}
	form.Set("provider", "instagram")
	form.Set("content", "")
	form.Set("scheduled_at", scheduledAt.Format(time.RFC3339))

	w := postForm(router, "/posts", form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePost_BadTimestamp(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", func(c *gin.Context) {
		c.Set("user_id", "owner-1")
		handler.CreatePost(c)
	})

	form := url.Values{}
	form.Set("provider", "instagram")
	form.Set("content", "Hello")
	form.Set("scheduled_at", "tomorrow at noon")

	w := postForm(router, "/posts", form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CreatePost")
}

func TestListPosts(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts", handler.ListPosts)

	posts := []*entity.Post{
		{ID: "post-1", Provider: entity.ProviderYouTube, Status: entity.StatusPending},
	}
	mockUseCase.On("ListPosts", entity.StatusPending, 50, 0).Return(posts, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts?status=pending", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
	mockUseCase.AssertExpectations(t)
}

func TestGetPost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id", handler.GetPost)

	mockUseCase.On("GetPost", "missing").Return(nil, assert.AnError)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// MockAssistUseCase is a mock implementation of AssistUseCase
type MockAssistUseCase struct {
	mock.Mock
}

func (m *MockAssistUseCase) GenerateCaption(ctx context.Context, provider, topic string) (string, error) {
	args := m.Called(provider, topic)
	return args.String(0), args.Error(1)
}

var _ usecase.AssistUseCase = (*MockAssistUseCase)(nil)

func TestGenerateCaption(t *testing.T) {
	mockUseCase := new(MockAssistUseCase)
	handler := NewAssistHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/assist/caption", handler.GenerateCaption)

	mockUseCase.On("GenerateCaption", "instagram", "coffee shop opening").Return("Grand opening! #coffee", nil)

	body, _ := json.Marshal(CaptionRequest{Provider: "instagram", Topic: "coffee shop opening"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/assist/caption", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Grand opening! #coffee", response["caption"])
}
