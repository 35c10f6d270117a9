package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event представляет собой любое событие в системе.
type Event interface {
	Name() string
}

// Listener - это обработчик (слушатель) событий.
type Listener func(ctx context.Context, event Event) error

// Bus - шина событий внутри процесса. Доставка best-effort:
// ошибки слушателей логируются и не влияют на публикующую операцию.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
}

// New создает новую шину событий.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

// Subscribe подписывает слушателя на определенное событие.
func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish публикует событие. Все подписчики будут вызваны.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	eventName := event.Name()
	for _, listener := range b.listeners[eventName] {
		go func(l Listener) {
			// Таймаут, чтобы не держать "вечные" горутины.
			ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()

			if err := l(ctxWithTimeout, event); err != nil {
				b.logger.Error("Ошибка в обработчике события",
					zap.String("event", eventName),
					zap.Error(err),
				)
			}
		}(listener)
	}
}
