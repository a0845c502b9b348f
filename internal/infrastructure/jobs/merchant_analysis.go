package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"revebot.backend/internal/domain/repositories"
	"revebot.backend/internal/infrastructure/queue"
	"revebot.backend/pkg/logger"
)

// MerchantAnalysisJob drains the analysis queue that step 4 submissions feed
// and records when each merchant's store was analysed. The enqueue side is
// fire-and-forget; this worker is the consuming end.
type MerchantAnalysisJob struct {
	tasks     *queue.RedisTaskQueue
	merchants repositories.MerchantRepository
	queueName string
	interval  time.Duration
	stop      chan struct{}
}

func NewMerchantAnalysisJob(tasks *queue.RedisTaskQueue, merchants repositories.MerchantRepository, queueName string) *MerchantAnalysisJob {
	return &MerchantAnalysisJob{
		tasks:     tasks,
		merchants: merchants,
		queueName: queueName,
		interval:  30 * time.Second,
		stop:      make(chan struct{}),
	}
}

func (j *MerchantAnalysisJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting merchant analysis worker", zap.String("queue", j.queueName))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "merchant analysis worker stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "merchant analysis worker stopped")
			return
		case <-ticker.C:
			j.drain(ctx)
		}
	}
}

func (j *MerchantAnalysisJob) Stop() {
	close(j.stop)
}

// drain pops queued merchant ids until the queue is empty
func (j *MerchantAnalysisJob) drain(ctx context.Context) {
	for {
		payload, err := j.tasks.Dequeue(ctx, j.queueName)
		if errors.Is(err, redis.Nil) {
			return
		}
		if err != nil {
			logger.Error(ctx, "failed to dequeue analysis task", zap.Error(err))
			return
		}
		j.analyse(ctx, payload)
	}
}

func (j *MerchantAnalysisJob) analyse(ctx context.Context, payload string) {
	merchantID, err := uuid.Parse(payload)
	if err != nil {
		logger.Warn(ctx, "discarding malformed analysis payload", zap.String("payload", payload))
		return
	}

	merchant, err := j.merchants.GetByID(ctx, merchantID)
	if err != nil {
		logger.Error(ctx, "failed to load merchant for analysis",
			zap.String("merchant_id", merchantID.String()), zap.Error(err))
		return
	}

	if err := j.merchants.UpdateAnalysedAt(ctx, merchant.ID, time.Now()); err != nil {
		logger.Error(ctx, "failed to record merchant analysis",
			zap.String("merchant_id", merchant.ID.String()), zap.Error(err))
		return
	}

	logger.Info(ctx, "merchant store analysed",
		zap.String("merchant_id", merchant.ID.String()),
		zap.String("domain", merchant.Domain))
}
