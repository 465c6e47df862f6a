package usecase

import (
	"errors"
	"testing"
	"time"

	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/services/scheduler/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// fakePostRepository records creations; queries are backed by a slice.
type fakePostRepository struct {
	created []*entity.Post
}

func (f *fakePostRepository) Create(post *entity.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	copied := *post
	f.created = append(f.created, &copied)
	return nil
}

func (f *fakePostRepository) GetByID(id string) (*entity.Post, error) {
	for _, post := range f.created {
		if post.ID == id {
			return post, nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakePostRepository) GetByOwnerID(ownerID string, limit, offset int) ([]*entity.Post, error) {
	var result []*entity.Post
	for _, post := range f.created {
		if post.OwnerID == ownerID {
			result = append(result, post)
		}
	}
	return result, nil
}

func (f *fakePostRepository) List(status entity.PostStatus, limit, offset int) ([]*entity.Post, error) {
	var result []*entity.Post
	for _, post := range f.created {
		if status == "" || post.Status == status {
			result = append(result, post)
		}
	}
	return result, nil
}

func (f *fakePostRepository) ListDue(status entity.PostStatus, due time.Time, limit int) ([]*entity.Post, error) {
	var result []*entity.Post
	for _, post := range f.created {
		if post.Status == status && !post.ScheduledAt.After(due) {
			result = append(result, post)
		}
	}
	return result, nil
}

func (f *fakePostRepository) UpdateStatus(id string, from, to entity.PostStatus) (bool, error) {
	if !from.CanTransitionTo(to) {
		return false, nil
	}
	for _, post := range f.created {
		if post.ID == id && post.Status == from {
			post.Status = to
			return true, nil
		}
	}
	return false, nil
}

func newTestPostUseCase() (PostUseCase, *fakePostRepository) {
	repo := &fakePostRepository{}
	uc := NewPostUseCase(repo, nil, nil, nil, logger.New())
	return uc, repo
}

func TestCreatePost(t *testing.T) {
	uc, repo := newTestPostUseCase()
	scheduledAt := time.Now().Add(time.Hour)

	post, err := uc.CreatePost("owner-1", "instagram", "Launch day!", scheduledAt, nil)

	assert.NoError(t, err)
	assert.NotNil(t, post)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, entity.ProviderInstagram, post.Provider)
	// New posts always enter the approval queue
	assert.Equal(t, entity.StatusNeedsApproval, post.Status)
	assert.Len(t, repo.created, 1)
}

func TestCreatePost_PastScheduleIsAllowed(t *testing.T) {
	uc, _ := newTestPostUseCase()

	// A past schedule means "as soon as approved"
	post, err := uc.CreatePost("owner-1", "facebook", "Retro post", time.Now().Add(-time.Hour), nil)

	assert.NoError(t, err)
	assert.Equal(t, entity.StatusNeedsApproval, post.Status)
}

func TestCreatePost_EmptyContent(t *testing.T) {
	uc, repo := newTestPostUseCase()

	post, err := uc.CreatePost("owner-1", "instagram", "", time.Now(), nil)

	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Nil(t, post)
	// Nothing was persisted
	assert.Empty(t, repo.created)
}

func TestCreatePost_WhitespaceContent(t *testing.T) {
	uc, repo := newTestPostUseCase()

	post, err := uc.CreatePost("owner-1", "instagram", "   \n\t", time.Now(), nil)

	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Nil(t, post)
	assert.Empty(t, repo.created)
}

func TestCreatePost_InvalidProvider(t *testing.T) {
	uc, repo := newTestPostUseCase()

	post, err := uc.CreatePost("owner-1", "myspace", "Hello", time.Now(), nil)

	assert.ErrorIs(t, err, ErrInvalidProvider)
	assert.Nil(t, post)
	assert.Empty(t, repo.created)
}

func TestCreatePost_ProviderIsCaseInsensitive(t *testing.T) {
	uc, _ := newTestPostUseCase()

	post, err := uc.CreatePost("owner-1", "Instagram", "Hello", time.Now(), nil)

	assert.NoError(t, err)
	assert.Equal(t, entity.ProviderInstagram, post.Provider)
}

func TestListPosts_UnknownStatus(t *testing.T) {
	uc, _ := newTestPostUseCase()

	_, err := uc.ListPosts(entity.PostStatus("archived"), 10, 0)

	assert.Error(t, err)
}

func TestListPosts_FilterByStatus(t *testing.T) {
	uc, repo := newTestPostUseCase()

	_, err := uc.CreatePost("owner-1", "youtube", "First", time.Now(), nil)
	assert.NoError(t, err)
	_, err = uc.CreatePost("owner-1", "tiktok", "Second", time.Now(), nil)
	assert.NoError(t, err)

	applied, err := repo.UpdateStatus(repo.created[0].ID, entity.StatusNeedsApproval, entity.StatusPending)
	assert.NoError(t, err)
	assert.True(t, applied)

	pending, err := uc.ListPosts(entity.StatusPending, 10, 0)
	assert.NoError(t, err)
	assert.Len(t, pending, 1)

	queue, err := uc.ListPosts(entity.StatusNeedsApproval, 10, 0)
	assert.NoError(t, err)
	assert.Len(t, queue, 1)
}
