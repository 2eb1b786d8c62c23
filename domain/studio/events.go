package studio

import (
	"context"
	"sync"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/prasetyowira/qrstudio/infrastructure/logger"
)

// EventBus fans log lines out to subscribers, in subscription order,
// on the publishing goroutine.
type EventBus struct {
	mu   sync.RWMutex
	subs []func(string)
}

// NewEventBus creates an empty bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers fn for every subsequent Publish
func (b *EventBus) Subscribe(fn func(string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, fn)
}

// Publish delivers message to all subscribers. A subscriber may itself
// subscribe or publish without deadlocking.
func (b *EventBus) Publish(message string) {
	b.mu.RLock()
	subs := make([]func(string), len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(message)
	}
}

// LogSubscriber mirrors bus messages into the structured log.
func LogSubscriber(ctx context.Context) func(string) {
	return func(message string) {
		logger.CtxInfo(ctx, constant.MsgStudioEvent, logger.LoggerInfo{
			ContextFunction: constant.CtxEventBus,
			Data: map[string]interface{}{
				constant.DataMessage: message,
			},
		})
	}
}
