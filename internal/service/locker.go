package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrLockTimeout площадку держит другая регистрация дольше допустимого
var ErrLockTimeout = errors.New("court lock wait timed out")

// Locker сериализует проверку конфликтов и запись по одной площадке.
// Lock блокирует до захвата или отмены ctx; возвращённую функцию
// нужно вызвать ровно один раз.
type Locker interface {
	Lock(ctx context.Context, courtID int64) (unlock func(), err error)
}

// LocalLocker блокировки внутри одного процесса
type LocalLocker struct {
	mu    sync.Mutex
	slots map[int64]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[int64]chan struct{})}
}

func (l *LocalLocker) slot(courtID int64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[courtID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[courtID] = ch
	}
	return ch
}

func (l *LocalLocker) Lock(ctx context.Context, courtID int64) (func(), error) {
	ch := l.slot(courtID)
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("lock court %d: %w", courtID, ctx.Err())
	}
}

// releaseScript удаляет ключ, только если он всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker блокировка площадки между несколькими процессами.
// Ключ ставится через SET NX с TTL, значение уникальный токен владельца.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
	logger *zap.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		retry:  50 * time.Millisecond,
		logger: logger,
	}
}

func lockKey(courtID int64) string {
	return "court_booking:lock:court:" + strconv.FormatInt(courtID, 10)
}

func (l *RedisLocker) Lock(ctx context.Context, courtID int64) (func(), error) {
	key := lockKey(courtID)
	token := uuid.NewString()

	deadline := time.NewTimer(l.ttl)
	defer deadline.Stop()
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire court lock: %w", err)
		}
		if acquired {
			l.logger.Debug("Court lock acquired",
				zap.Int64("court_id", courtID),
				zap.String("token", token),
			)
			return func() { l.release(key, token, courtID) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("lock court %d: %w", courtID, ctx.Err())
		case <-deadline.C:
			return nil, fmt.Errorf("lock court %d: %w", courtID, ErrLockTimeout)
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) release(key, token string, courtID int64) {
	// Освобождаем даже если контекст запроса уже отменён
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	deleted, err := releaseScript.Run(ctx, l.client, []string{key}, token).Int()
	if err != nil {
		l.logger.Error("Failed to release court lock",
			zap.Int64("court_id", courtID),
			zap.Error(err),
		)
		return
	}
	if deleted == 0 {
		l.logger.Warn("Court lock expired before release",
			zap.Int64("court_id", courtID),
			zap.String("token", token),
		)
	}
}
