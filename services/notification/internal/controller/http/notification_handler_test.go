package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orbit-scheduler/pkg/activity"
	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/pkg/queue"
	"orbit-scheduler/services/notification/internal/entity"
	"orbit-scheduler/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationUseCase struct {
	notifications map[string][]entity.Notification
	activityFeed  []activity.Entry
}

var _ usecase.NotificationUseCase = (*fakeNotificationUseCase)(nil)

func (f *fakeNotificationUseCase) StoreEvent(event queue.PostEvent) (*entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationUseCase) GetNotifications(ownerID string, limit, offset int) ([]entity.Notification, int64, error) {
	list := f.notifications[ownerID]
	return list, int64(len(list)), nil
}

func (f *fakeNotificationUseCase) GetRecentActivity(ctx context.Context, limit int) ([]activity.Entry, error) {
	return f.activityFeed, nil
}

func setupNotificationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func authenticatedAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func TestGetNotifications_Unauthorized(t *testing.T) {
	handler := &NotificationHandler{
		logger: logger.New(),
	}

	router := setupNotificationTestRouter()
	router.GET("/notifications", handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response["error"], "Unauthorized")
}

func TestGetNotifications_ReturnsOwnersList(t *testing.T) {
	uc := &fakeNotificationUseCase{
		notifications: map[string][]entity.Notification{
			"user-1": {
				{OwnerID: "user-1", Message: "A post for Instagram has been published!", Severity: "success"},
			},
			"user-2": {
				{OwnerID: "user-2", Message: "A post for X/Twitter has been published!", Severity: "success"},
			},
		},
	}
	handler := NewNotificationHandler(uc, nil, logger.New(), nil)

	router := setupNotificationTestRouter()
	router.GET("/notifications", authenticatedAs("user-1"), handler.GetNotifications)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(1), response["count"])

	notifications := response["notifications"].([]interface{})
	first := notifications[0].(map[string]interface{})
	assert.Equal(t, "A post for Instagram has been published!", first["message"])
}

func TestGetActivity_Unauthorized(t *testing.T) {
	handler := &NotificationHandler{
		logger: logger.New(),
	}

	router := setupNotificationTestRouter()
	router.GET("/activity", handler.GetActivity)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/activity", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetActivity_ReturnsFeed(t *testing.T) {
	uc := &fakeNotificationUseCase{
		activityFeed: []activity.Entry{
			{Type: "post", Description: "A post was published to Instagram."},
			{Type: "post", Description: "A post was published to LinkedIn."},
		},
	}
	handler := NewNotificationHandler(uc, nil, logger.New(), nil)

	router := setupNotificationTestRouter()
	router.GET("/activity", authenticatedAs("user-1"), handler.GetActivity)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/activity", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])
}

func TestHandleWebSocket_TokenRequired(t *testing.T) {
	handler := &NotificationHandler{
		logger: logger.New(),
	}

	router := setupNotificationTestRouter()
	router.GET("/notifications/ws", handler.HandleWebSocket)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/notifications/ws", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
