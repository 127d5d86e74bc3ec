package queue

import (
	"github.com/vitrine-shop/vitrine/internal/config"
	"github.com/vitrine-shop/vitrine/internal/constants"
	"github.com/vitrine-shop/vitrine/internal/logger"

	"github.com/hibiken/asynq"
)

// Client 异步任务投递客户端
type Client struct {
	inner *asynq.Client
}

// NewClient 创建任务客户端；队列或 Redis 未启用时返回空客户端
func NewClient(queueCfg config.QueueConfig, redisCfg config.RedisConfig) *Client {
	if !queueCfg.Enabled || !redisCfg.Enabled {
		logger.Infow("queue_disabled")
		return &Client{}
	}
	inner := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})
	logger.Infow("queue_client_ready", "addr", redisCfg.Addr)
	return &Client{inner: inner}
}

// Enabled 队列是否可用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Enqueue 投递任务
func (c *Client) Enqueue(task *asynq.Task, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	info, err := c.inner.Enqueue(task, opts...)
	if err != nil {
		return err
	}
	logger.Debugw("task_enqueued", "task_id", info.ID, "type", info.Type, "queue", info.Queue)
	return nil
}

// BuildServerConfig 构建 worker 端 asynq 连接与调度配置
func BuildServerConfig(queueCfg config.QueueConfig, redisCfg config.RedisConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := queueCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	opt := asynq.RedisClientOpt{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}
	serverCfg := asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			constants.QueueEmail: 1,
		},
	}
	return opt, serverCfg
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}
