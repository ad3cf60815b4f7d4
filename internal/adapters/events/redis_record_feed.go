package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/medicalriskpipeline/internal/domain/entities"
	"github.com/zatekoja/medicalriskpipeline/internal/domain/providers"
	redisclient "github.com/zatekoja/medicalriskpipeline/internal/infrastructure/clients/redis"
)

// RedisRecordFeed implements the RecordFeed interface on Redis Pub/Sub. The
// ingest side publishes one JSON batch per insert burst; this side fans the
// batches out to the pipeline worker. Delivery is at-least-once from the
// consumer's point of view: replays and overlapping batches are expected.
type RedisRecordFeed struct {
	client  *redisclient.Client
	channel string

	mu     sync.Mutex
	pubsub *redis.PubSub
	ctx    context.Context
	cancel context.CancelFunc
}

// NewRedisRecordFeed creates a new Redis-backed record feed on the given channel
func NewRedisRecordFeed(client *redisclient.Client, channel string) providers.RecordFeed {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisRecordFeed{
		client:  client,
		channel: channel,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Publish emits a batch of newly inserted records to the feed
func (f *RedisRecordFeed) Publish(ctx context.Context, batch *entities.RecordBatch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal record batch: %w", err)
	}

	if err := f.client.Client().Publish(ctx, f.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish record batch: %w", err)
	}

	log.Debug().Str("channel", f.channel).Str("batch_id", batch.ID).Int("records", len(batch.Records)).Msg("Published record batch")
	return nil
}

// Subscribe starts consuming batches until ctx is cancelled
func (f *RedisRecordFeed) Subscribe(ctx context.Context) (<-chan *entities.RecordBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pubsub != nil {
		return nil, fmt.Errorf("record feed already has an active subscription")
	}

	pubsub := f.client.Client().Subscribe(f.ctx, f.channel)
	if _, err := pubsub.Receive(f.ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", f.channel, err)
	}
	f.pubsub = pubsub

	batches := make(chan *entities.RecordBatch, 100)
	go f.receive(ctx, pubsub, batches)

	log.Info().Str("channel", f.channel).Msg("Subscribed to record feed")
	return batches, nil
}

func (f *RedisRecordFeed) receive(ctx context.Context, pubsub *redis.PubSub, batches chan<- *entities.RecordBatch) {
	defer close(batches)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var batch entities.RecordBatch
			if err := json.Unmarshal([]byte(msg.Payload), &batch); err != nil {
				log.Error().Err(err).Str("channel", f.channel).Msg("Failed to unmarshal record batch, dropping message")
				continue
			}

			select {
			case batches <- &batch:
			case <-ctx.Done():
				return
			case <-f.ctx.Done():
				return
			}
		}
	}
}

// Close shuts the feed down
func (f *RedisRecordFeed) Close() error {
	f.cancel()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pubsub != nil {
		if err := f.pubsub.Close(); err != nil {
			return fmt.Errorf("failed to close record feed subscription: %w", err)
		}
		f.pubsub = nil
	}

	log.Info().Str("channel", f.channel).Msg("Record feed closed")
	return nil
}
