package usecase

import (
	"context"
	"fmt"
	"time"

	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/services/scheduler/internal/entity"
)

const (
	SeveritySuccess = "success"
	SeverityError   = "error"
	SeverityInfo    = "info"
)

// PostStore is the slice of the repository the reconciler needs.
type PostStore interface {
	ListDue(status entity.PostStatus, due time.Time, limit int) ([]*entity.Post, error)
	UpdateStatus(id string, from, to entity.PostStatus) (bool, error)
}

// NotificationSink receives fire-and-forget user-facing messages. Delivery
// is best effort; the reconciler does not depend on it succeeding.
type NotificationSink interface {
	Emit(ctx context.Context, ownerID, message, severity string) error
}

// ActivityLog is the append-only bounded history of noteworthy events.
type ActivityLog interface {
	Append(ctx context.Context, entryType, description string) error
}

// Reconciler is the autonomous scheduling engine: a recurring task that
// promotes pending posts to published once their scheduled time arrives.
// The conditional status update is the only synchronization with other
// observers racing on the same posts, so a post is published at most once
// no matter how many reconcilers run against the shared store.
type Reconciler struct {
	posts         PostStore
	notifications NotificationSink
	activity      ActivityLog
	interval      time.Duration
	logger        *logger.Logger
	now           func() time.Time
	stopChan      chan struct{}
}

func NewReconciler(
	posts PostStore,
	notifications NotificationSink,
	activity ActivityLog,
	interval time.Duration,
	log *logger.Logger,
) *Reconciler {
	return &Reconciler{
		posts:         posts,
		notifications: notifications,
		activity:      activity,
		interval:      interval,
		logger:        log,
		now:           time.Now,
		stopChan:      make(chan struct{}),
	}
}

// Start runs the reconcile loop until Stop is called. Tick errors are
// contained and retried on the next interval; they never escape the loop.
func (r *Reconciler) Start() {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Reconciler started, interval %s", r.interval)

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.interval)
			if _, err := r.Tick(ctx); err != nil {
				r.logger.Error("Reconcile tick failed, retrying next interval: %v", err)
			}
			cancel()

		case <-r.stopChan:
			r.logger.Info("Reconciler stopped")
			return
		}
	}
}

func (r *Reconciler) Stop() {
	close(r.stopChan)
}

// Tick runs one reconcile pass and returns how many posts it published.
// It is callable directly, without the timer.
//
// A post qualifies when its status is still pending and its scheduled time
// is at or before now. Qualifying posts are promoted with a conditional
// write; if another observer won the race the update does not apply and the
// post is skipped without comment. If the due-post read itself fails the
// pass aborts with no state change.
func (r *Reconciler) Tick(ctx context.Context) (int, error) {
	now := r.now()

	due, err := r.posts.ListDue(entity.StatusPending, now, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to read due posts: %w", err)
	}

	published := 0
	for _, post := range due {
		applied, err := r.posts.UpdateStatus(post.ID, entity.StatusPending, entity.StatusPublished)
		if err != nil {
			r.logger.Error("Failed to publish post %s: %v", post.ID, err)
			continue
		}
		if !applied {
			// Another observer already transitioned this post
			continue
		}

		published++
		platform := post.Provider.DisplayName()

		if err := r.notifications.Emit(ctx, post.OwnerID, fmt.Sprintf("A post for %s has been published!", platform), SeveritySuccess); err != nil {
			r.logger.Warn("Failed to emit publish notification for post %s: %v", post.ID, err)
		}

		if err := r.activity.Append(ctx, "post", fmt.Sprintf("A post was published to %s.", platform)); err != nil {
			r.logger.Warn("Failed to append activity entry for post %s: %v", post.ID, err)
		}
	}

	// The quiet tick is the common case and stays quiet
	if published > 0 {
		r.logger.Info("Reconciler published %d post(s)", published)
	}

	return published, nil
}
