package queue

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisTaskQueue pushes fire-and-forget task payloads onto Redis lists.
// Consumers pop from the same list by queue name.
type RedisTaskQueue struct {
	client *redis.Client
}

func NewRedisTaskQueue(client *redis.Client) *RedisTaskQueue {
	return &RedisTaskQueue{client: client}
}

// Enqueue appends payload to the tail of the named queue
func (q *RedisTaskQueue) Enqueue(ctx context.Context, queue, payload string) error {
	return q.client.RPush(ctx, queue, payload).Err()
}

// Dequeue pops the next payload from the head of the named queue. It returns
// redis.Nil when the queue is empty.
func (q *RedisTaskQueue) Dequeue(ctx context.Context, queue string) (string, error) {
	return q.client.LPop(ctx, queue).Result()
}

// Len returns the number of pending payloads on the named queue
func (q *RedisTaskQueue) Len(ctx context.Context, queue string) (int64, error) {
	return q.client.LLen(ctx, queue).Result()
}
