package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultCloseTimeout = 5 * time.Second
	connectTimeout      = 5 * time.Second
)

// InvalidationMessage is the payload published when a lookup slot is cleared.
// Origin identifies the publishing instance so it can skip its own messages.
type InvalidationMessage struct {
	Scope     string `json:"scope"`
	Origin    string `json:"origin"`
	Timestamp int64  `json:"timestamp"`
}

// LookupInvalidator fans lookup-cache invalidations out to other instances
type LookupInvalidator interface {
	// Publish announces that the given scope was invalidated locally
	Publish(ctx context.Context, scope string) error
	// Subscribe blocks, calling onInvalidate for scopes cleared by other
	// instances, until ctx is cancelled or Close is called
	Subscribe(ctx context.Context, onInvalidate func(scope string)) error
	// Close stops the subscription and releases resources
	Close() error
}

// RedisLookupInvalidator implements LookupInvalidator using Redis Pub/Sub
type RedisLookupInvalidator struct {
	client     *redis.Client
	ownsClient bool
	channel    string
	instanceID string
	logger     *zap.Logger

	mu        sync.Mutex
	cancelFn  context.CancelFunc
	isRunning bool
	doneCh    chan struct{}
	doneOnce  sync.Once
}

// RedisOptions holds connection settings for the invalidator
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// NewRedisLookupInvalidator connects to Redis and verifies the connection
func NewRedisLookupInvalidator(opts RedisOptions, logger *zap.Logger) (*RedisLookupInvalidator, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	inv := NewRedisLookupInvalidatorWithClient(client, opts.Channel, logger)
	inv.ownsClient = true
	return inv, nil
}

// NewRedisLookupInvalidatorWithClient creates an invalidator on a shared client.
// The caller keeps ownership of the client.
func NewRedisLookupInvalidatorWithClient(client *redis.Client, channel string, logger *zap.Logger) *RedisLookupInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLookupInvalidator{
		client:     client,
		channel:    channel,
		instanceID: uuid.NewString(),
		logger:     logger.Named("lookup-invalidator"),
		doneCh:     make(chan struct{}),
	}
}

// Publish announces a local invalidation to the other instances
func (i *RedisLookupInvalidator) Publish(ctx context.Context, scope string) error {
	data, err := encodeMessage(InvalidationMessage{
		Scope:     scope,
		Origin:    i.instanceID,
		Timestamp: time.Now().UnixNano(),
	})
	if err != nil {
		return err
	}

	if err := i.client.Publish(ctx, i.channel, data).Err(); err != nil {
		i.logger.Error("Failed to publish lookup invalidation",
			zap.String("channel", i.channel),
			zap.String("scope", scope),
			zap.Error(err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	i.logger.Debug("Published lookup invalidation",
		zap.String("channel", i.channel),
		zap.String("scope", scope))
	return nil
}

// Subscribe listens on the channel until ctx is cancelled or Close is called
func (i *RedisLookupInvalidator) Subscribe(ctx context.Context, onInvalidate func(scope string)) error {
	i.mu.Lock()
	if i.isRunning {
		i.mu.Unlock()
		return fmt.Errorf("subscription already running")
	}
	i.isRunning = true
	subCtx, cancel := context.WithCancel(ctx)
	i.cancelFn = cancel
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.isRunning = false
		i.mu.Unlock()
		i.doneOnce.Do(func() { close(i.doneCh) })
	}()

	pubsub := i.client.Subscribe(subCtx, i.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(subCtx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}
	i.logger.Info("Subscribed to lookup invalidation channel", zap.String("channel", i.channel))

	ch := pubsub.Channel()
	for {
		select {
		case <-subCtx.Done():
			i.logger.Info("Lookup invalidation subscription stopped")
			return subCtx.Err()
		case msg, ok := <-ch:
			if !ok {
				i.logger.Warn("Lookup invalidation channel closed")
				return nil
			}
			i.dispatch(msg.Payload, onInvalidate)
		}
	}
}

// dispatch decodes one payload and runs the callback unless the message is our own
func (i *RedisLookupInvalidator) dispatch(payload string, onInvalidate func(scope string)) {
	msg, err := decodeMessage(payload)
	if err != nil {
		i.logger.Error("Failed to decode lookup invalidation",
			zap.String("payload", payload),
			zap.Error(err))
		return
	}
	if msg.Origin == i.instanceID {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			i.logger.Error("Panic in lookup invalidation callback", zap.Any("panic", r))
		}
	}()
	onInvalidate(msg.Scope)
}

// Close stops the subscription and closes the client if this invalidator owns it
func (i *RedisLookupInvalidator) Close() error {
	i.mu.Lock()
	cancelFn := i.cancelFn
	i.mu.Unlock()

	if cancelFn != nil {
		cancelFn()
		select {
		case <-i.doneCh:
		case <-time.After(defaultCloseTimeout):
			i.logger.Warn("Timeout waiting for subscription to stop")
		}
	}

	if i.ownsClient {
		return i.client.Close()
	}
	return nil
}

func encodeMessage(msg InvalidationMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return data, nil
}

func decodeMessage(payload string) (InvalidationMessage, error) {
	var msg InvalidationMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return InvalidationMessage{}, err
	}
	if msg.Scope == "" {
		return InvalidationMessage{}, fmt.Errorf("message has no scope")
	}
	return msg, nil
}

var _ LookupInvalidator = (*RedisLookupInvalidator)(nil)
