package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"postcraft/pkg/logger"
	"postcraft/pkg/queue"
	"postcraft/services/distribution/internal/entity"

	"github.com/redis/go-redis/v9"
)

const deliveryTTL = 7 * 24 * time.Hour

// Sender pushes a post to one external platform.
type Sender interface {
	Send(task queue.PostSubmittedTask) error
}

type DistributionUseCase interface {
	HandlePostSubmitted(task queue.PostSubmittedTask) error
	Deliveries(ctx context.Context, postID string) ([]entity.Delivery, error)
	QueueDepth() (int, error)
}

type distributionUseCase struct {
	senders     map[string]Sender
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
	now         func() time.Time
}

// NewDistributionUseCase takes one sender per connected platform, keyed by
// lower-case platform name. redisClient and queueClient may be nil.
func NewDistributionUseCase(senders map[string]Sender, redisClient *redis.Client, queueClient *queue.Client, logger *logger.Logger) DistributionUseCase {
	return &distributionUseCase{
		senders:     senders,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      logger,
		now:         time.Now,
	}
}

// HandlePostSubmitted delivers the post to each connected platform it
// targets. Platforms already delivered or rejected for this post are not
// sent again, so a retried task only repeats transient failures. When every
// failure is permanent the returned error wraps queue.ErrPermanent.
func (uc *distributionUseCase) HandlePostSubmitted(task queue.PostSubmittedTask) error {
	if len(task.Platforms) == 0 || strings.TrimSpace(task.Text) == "" {
		return fmt.Errorf("%w: post %s has no platforms or text", queue.ErrMalformedTask, task.PostID)
	}

	uc.logger.Info("[DISTRIBUTION] Handling post_id=%s platforms=%v", task.PostID, task.Platforms)

	var failed, rejected []string
	for _, platform := range task.Platforms {
		key := strings.ToLower(platform)
		sender, ok := uc.senders[key]
		if !ok {
			uc.logger.Info("[DISTRIBUTION] %s is not connected, skipping post_id=%s", platform, task.PostID)
			uc.record(task.PostID, platform, entity.StatusSkipped, "not connected")
			continue
		}
		if uc.settled(task.PostID, platform) {
			continue
		}

		if err := sender.Send(task); err != nil {
			if errors.Is(err, queue.ErrPermanent) {
				uc.logger.Error("[DISTRIBUTION] %s rejected post_id=%s: %v", platform, task.PostID, err)
				uc.record(task.PostID, platform, entity.StatusRejected, err.Error())
				rejected = append(rejected, platform)
				continue
			}
			uc.logger.Error("[DISTRIBUTION] Delivery to %s failed for post_id=%s: %v", platform, task.PostID, err)
			uc.record(task.PostID, platform, entity.StatusFailed, err.Error())
			failed = append(failed, platform)
			continue
		}
		uc.logger.Info("[DISTRIBUTION] Delivered post_id=%s to %s", task.PostID, platform)
		uc.record(task.PostID, platform, entity.StatusDelivered, "")
	}

	if len(failed) > 0 {
		return fmt.Errorf("delivery failed for %s", strings.Join(failed, ", "))
	}
	if len(rejected) > 0 {
		return fmt.Errorf("%w: rejected by %s", queue.ErrPermanent, strings.Join(rejected, ", "))
	}
	return nil
}

func deliveriesKey(postID string) string {
	return "distribution:post:" + postID
}

func (uc *distributionUseCase) record(postID, platform string, status entity.DeliveryStatus, detail string) {
	if uc.redisClient == nil {
		return
	}
	d := entity.Delivery{PostID: postID, Platform: platform, Status: status, Detail: detail, At: uc.now().UTC()}
	data, err := json.Marshal(d)
	if err != nil {
		return
	}
	ctx := context.Background()
	key := deliveriesKey(postID)
	if err := uc.redisClient.HSet(ctx, key, platform, data).Err(); err != nil {
		uc.logger.Warn("[DISTRIBUTION] Failed to record delivery for post_id=%s: %v", postID, err)
		return
	}
	uc.redisClient.Expire(ctx, key, deliveryTTL)
}

// settled reports whether platform already has a final outcome for postID.
func (uc *distributionUseCase) settled(postID, platform string) bool {
	if uc.redisClient == nil {
		return false
	}
	data, err := uc.redisClient.HGet(context.Background(), deliveriesKey(postID), platform).Bytes()
	if err != nil {
		return false
	}
	var d entity.Delivery
	if err := json.Unmarshal(data, &d); err != nil {
		return false
	}
	return d.Status == entity.StatusDelivered || d.Status == entity.StatusRejected
}

func (uc *distributionUseCase) Deliveries(ctx context.Context, postID string) ([]entity.Delivery, error) {
	if uc.redisClient == nil {
		return []entity.Delivery{}, nil
	}
	values, err := uc.redisClient.HGetAll(ctx, deliveriesKey(postID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get deliveries: %w", err)
	}
	deliveries := make([]entity.Delivery, 0, len(values))
	for _, v := range values {
		var d entity.Delivery
		if err := json.Unmarshal([]byte(v), &d); err == nil {
			deliveries = append(deliveries, d)
		}
	}
	return deliveries, nil
}

func (uc *distributionUseCase) QueueDepth() (int, error) {
	if uc.queueClient == nil {
		return 0, fmt.Errorf("queue client is not available")
	}
	return uc.queueClient.QueueDepth()
}
