package cache

import (
	"context"
	"sync"
	"time"
)

const webhookEventKeyPrefix = "vitrine:webhook:event:"

// 回调事件去重窗口
const webhookEventTTL = 24 * time.Hour

// Redis 不可用时的进程内兜底去重表
var (
	localEventsMu sync.Mutex
	localEvents   = make(map[string]time.Time)
)

// MarkWebhookEventProcessed 标记回调事件已处理
// 返回 true 表示首次处理，false 表示重复投递
func MarkWebhookEventProcessed(ctx context.Context, eventID string) (bool, error) {
	if eventID == "" {
		return true, nil
	}

	if client != nil {
		return client.SetNX(ctx, webhookEventKeyPrefix+eventID, 1, webhookEventTTL).Result()
	}

	localEventsMu.Lock()
	defer localEventsMu.Unlock()
	now := time.Now()
	for id, seenAt := range localEvents {
		if now.Sub(seenAt) > webhookEventTTL {
			delete(localEvents, id)
		}
	}
	if _, seen := localEvents[eventID]; seen {
		return false, nil
	}
	localEvents[eventID] = now
	return true, nil
}

// UnmarkWebhookEventProcessed 释放事件标记
// 事件标记后处理失败时调用，让网关重试不被当作重复投递
func UnmarkWebhookEventProcessed(ctx context.Context, eventID string) error {
	if eventID == "" {
		return nil
	}

	if client != nil {
		return client.Del(ctx, webhookEventKeyPrefix+eventID).Err()
	}

	localEventsMu.Lock()
	defer localEventsMu.Unlock()
	delete(localEvents, eventID)
	return nil
}
